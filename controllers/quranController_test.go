package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SalahTracker/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetQuranTracks(t *testing.T) {
	_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = NewRequest(t, "GET", "/quran/tracks", nil)

	GetQuranTracks(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var tracks []models.QuranTrack
	_ = json.Unmarshal(w.Body.Bytes(), &tracks)
	assert.Len(t, tracks, 10)
	assert.Equal(t, models.TrackKey(tracks[0].File), tracks[0].Key)
}

func TestGetQuranProgress(t *testing.T) {
	track := models.QuranTracks[2]

	tests := []struct {
		name             string
		trackKey         string
		expectedStatus   int
		expectedPosition float64
	}{
		{"saved track", track.Key, http.StatusOK, 42.5},
		{"track never played", models.QuranTracks[0].Key, http.StatusOK, 0},
		{"unknown track", "bm9wZQ", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()
			_ = store.SetQuranProgress(context.Background(), "user-1", track.Key, models.QuranProgress{PositionSeconds: 42.5, XP: 4})

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = gin.Params{{Key: "track_key", Value: tt.trackKey}}
			c.Request = NewRequest(t, "GET", "/quran/tracks/"+tt.trackKey+"/progress", nil)

			GetQuranProgress(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response struct {
					Progress models.QuranProgress `json:"progress"`
				}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, tt.expectedPosition, response.Progress.PositionSeconds)
			}
		})
	}
}
