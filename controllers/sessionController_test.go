package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func startTestSession(t *testing.T, clientID string) {
	t.Helper()
	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = NewRequest(t, "POST", "/sessions", gin.H{"clientId": clientID})
	StartSession(c)
	if !assert.Equal(t, http.StatusOK, w.Code) {
		t.FailNow()
	}
}

func TestStartSession(t *testing.T) {
	tests := []struct {
		name              string
		body              interface{}
		sourceErr         error
		expectedStatus    int
		expectPlaceholder bool
	}{
		{
			name:           "default location",
			body:           gin.H{"clientId": "tab-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit location",
			body:           gin.H{"clientId": "tab-1", "latitude": 21.4225, "longitude": 39.8262},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing client id",
			body:           gin.H{"latitude": 21.4225, "longitude": 39.8262},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:              "schedule unavailable runs on placeholders",
			body:              gin.H{"clientId": "tab-1"},
			sourceErr:         errors.New("timeout"),
			expectedStatus:    http.StatusOK,
			expectPlaceholder: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings(), Err: tt.sourceErr})
			defer cleanup()

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Request = NewRequest(t, "POST", "/sessions", tt.body)

			StartSession(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response struct {
				ClientID  string           `json:"clientId"`
				Countdown models.Countdown `json:"countdown"`
				Warning   string           `json:"warning"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			assert.Equal(t, "tab-1", response.ClientID)
			assert.Equal(t, 1, services.GetSessionManager().Count())
			if tt.expectPlaceholder {
				assert.Equal(t, models.PlaceholderTime, response.Countdown.RemainingText)
				assert.NotEmpty(t, response.Warning)
			} else {
				assert.True(t, models.IsTrackedPrayer(response.Countdown.NextName))
			}
		})
	}
}

func TestStopSession(t *testing.T) {
	_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	startTestSession(t, "tab-1")

	// another user cannot stop the session
	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdminUser(), true)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "DELETE", "/sessions/tab-1", nil)
	StopSession(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "DELETE", "/sessions/tab-1", nil)
	StopSession(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, services.GetSessionManager().Count())

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "GET", "/sessions/tab-1/status", nil)
	GetSessionStatus(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSessionStatus(t *testing.T) {
	_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	startTestSession(t, "tab-1")

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "GET", "/sessions/tab-1/status", nil)

	GetSessionStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Countdown models.Countdown          `json:"countdown"`
		Status    models.ActivePrayerStatus `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, models.IsTrackedPrayer(response.Status.Name))
	assert.False(t, response.Status.Marked)
	assert.Equal(t, response.Countdown.ActiveName, response.Status.Name)
}

func TestRecordSessionAudio(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectSaved    bool
	}{
		{
			name:           "pause saves immediately",
			body:           gin.H{"trackKey": models.QuranTracks[0].Key, "positionSeconds": 12, "event": "paused"},
			expectedStatus: http.StatusOK,
			expectSaved:    true,
		},
		{
			name:           "unknown track",
			body:           gin.H{"trackKey": "bm9wZQ", "positionSeconds": 12, "event": "paused"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown event",
			body:           gin.H{"trackKey": models.QuranTracks[0].Key, "positionSeconds": 12, "event": "seeking"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing position",
			body:           gin.H{"trackKey": models.QuranTracks[0].Key, "event": "paused"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()
			startTestSession(t, "tab-1")

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
			c.Request = NewRequest(t, "POST", "/sessions/tab-1/audio", tt.body)

			RecordSessionAudio(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.expectSaved {
				return
			}

			progress, err := store.GetQuranProgress(context.Background(), "user-1", models.QuranTracks[0].Key)
			assert.NoError(t, err)
			assert.Equal(t, 12.0, progress.PositionSeconds)
			assert.Equal(t, 1, progress.XP)

			xp, _ := store.GetXP(context.Background(), "user-1")
			assert.Equal(t, 1, xp)
		})
	}
}

func TestStreamSession(t *testing.T) {
	_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	startTestSession(t, "tab-1")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "GET", "/sessions/tab-1/stream", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		StreamSession(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after the client went away")
	}

	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, w.Body.String(), "event:countdown")
	assert.Contains(t, w.Body.String(), `"remaining"`)
}

func TestStreamSessionEndsWhenSessionStops(t *testing.T) {
	_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	startTestSession(t, "tab-1")

	c, _ := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "client_id", Value: "tab-1"}}
	c.Request = NewRequest(t, "GET", "/sessions/tab-1/stream", nil)

	done := make(chan struct{})
	go func() {
		StreamSession(c)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.NoError(t, services.GetSessionManager().Stop("tab-1", "user-1"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after the session stopped")
	}
}
