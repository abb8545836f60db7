package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

const TestSecret = "test-secret-key"

// StaticPrayerTimes serves the same timings for every date and location.
type StaticPrayerTimes struct {
	Times []models.PrayerTime
	Err   error
}

func (s StaticPrayerTimes) FetchTimings(ctx context.Context, date time.Time, coords models.Coordinates) ([]models.PrayerTime, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Times, nil
}

// SetupTestStore points every global service at a fresh memory store and
// source for testing
func SetupTestStore(t *testing.T, source services.PrayerTimesSource) (*repositories.MemoryStore, func()) {
	store := repositories.NewMemoryStore()

	services.InitTrackerService(store, time.UTC)
	services.InitGoodDeedService(store)
	services.InitQuranService(store, services.GetTrackerService())
	services.InitScheduleService(source, services.NewMemoryScheduleCache(), time.Hour, MockCoordinates(), time.UTC)
	services.InitPushNotificationService(nil, store)
	services.InitAccountService(store, TestSecret, nil, nil)
	services.InitReminderService(store, services.GetScheduleService(), services.GetPushNotificationService(), time.UTC)
	services.InitSessionManager(services.SessionConfig{
		TickInterval:          time.Second,
		StatusRefreshInterval: time.Second,
		AudioSaveInterval:     time.Second,
		Location:              time.UTC,
	}, services.GetTrackerService(), services.GetQuranService(), nil)

	cleanup := func() {
		services.GetSessionManager().Shutdown()
	}

	return store, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser sets the currentUser and admin values in the Gin context
// This simulates what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile, isAdmin bool) {
	c.Set("currentUser", user)
	c.Set("admin", isAdmin)
}

// NewRequest builds a test request, marshalling body as JSON when it is not nil
func NewRequest(t *testing.T, method string, target string, body interface{}) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}
