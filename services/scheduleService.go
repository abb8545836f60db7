package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SalahTracker/models"
	"github.com/rs/zerolog/log"
)

type ScheduleService struct {
	source   PrayerTimesSource
	cache    ScheduleCache
	ttl      time.Duration
	defaults models.Coordinates
	loc      *time.Location
	now      func() time.Time
}

var scheduleService *ScheduleService

func InitScheduleService(source PrayerTimesSource, cache ScheduleCache, ttl time.Duration, defaults models.Coordinates, loc *time.Location) {
	scheduleService = NewScheduleService(source, cache, ttl, defaults, loc)
	log.Info().Float64("lat", defaults.Latitude).Float64("lng", defaults.Longitude).Msg("Schedule service initialized")
}

func GetScheduleService() *ScheduleService {
	return scheduleService
}

func NewScheduleService(source PrayerTimesSource, cache ScheduleCache, ttl time.Duration, defaults models.Coordinates, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{source: source, cache: cache, ttl: ttl, defaults: defaults, loc: loc, now: time.Now}
}

func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

func (s *ScheduleService) Now() time.Time {
	return s.now().In(s.loc)
}

// Coordinates substitutes the default location when coords is nil.
func (s *ScheduleService) Coordinates(coords *models.Coordinates) models.Coordinates {
	if coords == nil {
		return s.defaults
	}
	return *coords
}

// ForDate returns the schedule for date at coords. A fresh cache entry is
// served as is; otherwise the source is queried. When the source fails the
// last cached schedule of the location is returned flagged Stale.
func (s *ScheduleService) ForDate(ctx context.Context, date time.Time, coords *models.Coordinates) (models.Schedule, error) {
	at := s.Coordinates(coords)
	day := date.In(s.loc).Format(DateLayout)
	key := scheduleKey(at, day)

	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	schedule, err := s.fetch(ctx, date.In(s.loc), at)
	if err == nil {
		s.store(ctx, key, schedule)
		s.store(ctx, latestScheduleKey(at), schedule)
		return schedule, nil
	}

	log.Error().Err(err).Str("date", day).Float64("lat", at.Latitude).Float64("lng", at.Longitude).Msg("Failed to fetch prayer times")
	if cached, ok := s.cached(ctx, latestScheduleKey(at)); ok {
		cached.Stale = true
		return cached, nil
	}
	if !errors.Is(err, ErrDataUnavailable) {
		err = fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return models.Schedule{}, err
}

// Today is ForDate for the current date in the configured timezone.
func (s *ScheduleService) Today(ctx context.Context, coords *models.Coordinates) (models.Schedule, error) {
	return s.ForDate(ctx, s.Now(), coords)
}

func (s *ScheduleService) fetch(ctx context.Context, date time.Time, at models.Coordinates) (models.Schedule, error) {
	if s.source == nil {
		return models.Schedule{}, fmt.Errorf("%w: no prayer times source configured", ErrDataUnavailable)
	}
	times, err := s.source.FetchTimings(ctx, date, at)
	if err != nil {
		return models.Schedule{}, err
	}
	prayers, err := BuildSchedule(times)
	if err != nil {
		return models.Schedule{}, err
	}
	window, err := LastThirdWindow(prayers)
	if err != nil {
		return models.Schedule{}, err
	}
	return models.Schedule{
		Date:      date.Format(DateLayout),
		Latitude:  at.Latitude,
		Longitude: at.Longitude,
		Prayers:   prayers,
		LastThird: window,
		FetchedAt: s.now().UTC(),
	}, nil
}

func (s *ScheduleService) cached(ctx context.Context, key string) (models.Schedule, bool) {
	if s.cache == nil {
		return models.Schedule{}, false
	}
	schedule, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Schedule cache read failed")
		return models.Schedule{}, false
	}
	return schedule, ok
}

func (s *ScheduleService) store(ctx context.Context, key string, schedule models.Schedule) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, schedule, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Schedule cache write failed")
	}
}
