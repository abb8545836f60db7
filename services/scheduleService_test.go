package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SalahTracker/models"
	"github.com/stretchr/testify/assert"
)

const aladhanBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "05:00",
      "Sunrise": "06:20",
      "Dhuhr": "12:15",
      "Asr": "15:45",
      "Sunset": "18:18",
      "Maghrib": "18:20",
      "Isha": "19:45",
      "Imsak": "04:50",
      "Midnight": "00:40"
    }
  }
}`

type fakeSource struct {
	times []models.PrayerTime
	err   error
	calls int
}

func (f *fakeSource) FetchTimings(ctx context.Context, date time.Time, coords models.Coordinates) ([]models.PrayerTime, error) {
	f.calls++
	return f.times, f.err
}

func TestAladhanClientFetchTimings(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(aladhanBody))
	}))
	defer server.Close()

	client := NewAladhanClient(server.URL, 2)
	times, err := client.FetchTimings(context.Background(), at(10, 9, 0, 0), models.Coordinates{Latitude: 24.7136, Longitude: 46.6753})

	assert.NoError(t, err)
	assert.Equal(t, "/timings/2024-03-10", gotPath)
	assert.Equal(t, "latitude=24.7136&longitude=46.6753&method=2", gotQuery)
	assert.Equal(t, sourceTimes(), times)
}

func TestAladhanClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewAladhanClient(server.URL, 2).FetchTimings(context.Background(), at(10, 9, 0, 0), models.Coordinates{})
			assert.ErrorIs(t, err, ErrDataUnavailable)
		})
	}
}

func TestScheduleServiceForDate(t *testing.T) {
	source := &fakeSource{times: sourceTimes()}
	cache := NewMemoryScheduleCache()
	service := NewScheduleService(source, cache, time.Hour, models.Coordinates{Latitude: 24.7136, Longitude: 46.6753}, riyadh)
	ctx := context.Background()

	schedule, err := service.ForDate(ctx, at(10, 9, 0, 0), nil)

	assert.NoError(t, err)
	assert.Equal(t, "2024-03-10", schedule.Date)
	assert.Equal(t, 24.7136, schedule.Latitude)
	assert.Equal(t, testSchedule(), schedule.Prayers)
	assert.Equal(t, models.NightWindow{Start: "01:26", End: "05:00"}, schedule.LastThird)
	assert.False(t, schedule.Stale)

	// second call for the same day is served from cache
	_, err = service.ForDate(ctx, at(10, 18, 0, 0), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}

func TestScheduleServiceFallsBackToStale(t *testing.T) {
	source := &fakeSource{times: sourceTimes()}
	service := NewScheduleService(source, NewMemoryScheduleCache(), time.Hour, models.Coordinates{Latitude: 1, Longitude: 2}, riyadh)
	ctx := context.Background()

	_, err := service.ForDate(ctx, at(10, 9, 0, 0), nil)
	assert.NoError(t, err)

	source.err = errors.New("network down")
	schedule, err := service.ForDate(ctx, at(11, 9, 0, 0), nil)

	assert.NoError(t, err)
	assert.True(t, schedule.Stale)
	assert.Equal(t, testSchedule(), schedule.Prayers)

	// another location has nothing cached
	_, err = service.ForDate(ctx, at(11, 9, 0, 0), &models.Coordinates{Latitude: 51.5, Longitude: -0.12})
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestScheduleServiceNeverFabricates(t *testing.T) {
	source := &fakeSource{times: sourceTimes()[:3]}
	service := NewScheduleService(source, nil, time.Hour, models.Coordinates{}, riyadh)

	schedule, err := service.ForDate(context.Background(), at(10, 9, 0, 0), nil)

	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Empty(t, schedule.Prayers)
}

func TestMemoryScheduleCacheExpires(t *testing.T) {
	cache := NewMemoryScheduleCache()
	now := at(10, 9, 0, 0)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "k", models.Schedule{Date: "2024-03-10"}, time.Minute)
	_, ok, _ := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, "k")
	assert.False(t, ok)
}
