package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Test MarkPrayer - points, validation and conflicts
func TestMarkPrayer(t *testing.T) {
	tests := []struct {
		name           string
		prayerName     string
		body           interface{}
		setupStore     func(store *repositories.MemoryStore)
		expectedStatus int
		expectedPoints int
	}{
		{
			name:           "prayed fajr",
			prayerName:     models.PrayerFajr,
			body:           gin.H{"status": "prayed"},
			expectedStatus: http.StatusOK,
			expectedPoints: 10,
		},
		{
			name:           "prayed tahajjud",
			prayerName:     models.PrayerTahajjud,
			body:           gin.H{"status": "prayed"},
			expectedStatus: http.StatusOK,
			expectedPoints: 20,
		},
		{
			name:           "missed earns nothing",
			prayerName:     models.PrayerIsha,
			body:           gin.H{"status": "missed"},
			expectedStatus: http.StatusOK,
			expectedPoints: 0,
		},
		{
			name:           "past date",
			prayerName:     models.PrayerAsr,
			body:           gin.H{"status": "prayed", "date": "2024-03-09"},
			expectedStatus: http.StatusOK,
			expectedPoints: 10,
		},
		{
			name:           "sunrise is not tracked",
			prayerName:     models.PrayerSunrise,
			body:           gin.H{"status": "prayed"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown status",
			prayerName:     models.PrayerFajr,
			body:           gin.H{"status": "late"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "future date",
			prayerName:     models.PrayerFajr,
			body:           gin.H{"status": "prayed", "date": "2999-01-01"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "already marked",
			prayerName: models.PrayerFajr,
			body:       gin.H{"status": "prayed", "date": "2024-03-09"},
			setupStore: func(store *repositories.MemoryStore) {
				_ = store.SetPrayerStatus(context.Background(), "user-1", "2024-03-09", models.PrayerFajr, models.StatusMissed)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:       "store unavailable",
			prayerName: models.PrayerFajr,
			body:       gin.H{"status": "prayed"},
			setupStore: func(store *repositories.MemoryStore) {
				store.FailWith = errors.New("connection refused")
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()
			if tt.setupStore != nil {
				tt.setupStore(store)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = gin.Params{{Key: "prayer_name", Value: tt.prayerName}}
			c.Request = NewRequest(t, "POST", "/logs/"+tt.prayerName, tt.body)

			MarkPrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.NotNil(t, response["error"])
				return
			}

			var result models.MarkPrayerResult
			_ = json.Unmarshal(w.Body.Bytes(), &result)
			assert.Equal(t, tt.prayerName, result.PrayerName)
			assert.Equal(t, tt.expectedPoints, result.PointsAwarded)
			assert.Equal(t, tt.expectedPoints, result.Progress.RewardPoints)
			assert.Equal(t, tt.expectedPoints, result.Progress.XPPoints)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestGetProgress(t *testing.T) {
	store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	ctx := context.Background()
	_ = store.SetRewardPoints(ctx, "user-1", 120)
	_ = store.SetXP(ctx, "user-1", 55)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = NewRequest(t, "GET", "/progress", nil)

	GetProgress(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary models.ProgressSummary
	_ = json.Unmarshal(w.Body.Bytes(), &summary)
	assert.Equal(t, 120, summary.Progress.RewardPoints)
	assert.Equal(t, 2, summary.Level.Level)
	assert.Equal(t, 5, summary.Level.XPIntoLevel)
	assert.Len(t, summary.Achievements, 1)
}

func TestGetTracker(t *testing.T) {
	tests := []struct {
		name           string
		failStore      bool
		expectedStatus int
	}{
		{"empty history", false, http.StatusOK},
		{"store unavailable", true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()
			if tt.failStore {
				store.FailWith = errors.New("connection refused")
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Request = NewRequest(t, "GET", "/tracker", nil)

			GetTracker(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var view models.TrackerView
				_ = json.Unmarshal(w.Body.Bytes(), &view)
				assert.Equal(t, 0, view.Streak.Current)
				assert.Len(t, view.Streak.Days, 7)
			}
		})
	}
}
