package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/rs/zerolog/log"
)

// LevelUpListener is told the final level reached after an xp gain.
type LevelUpListener func(ctx context.Context, uid string, level int)

type TrackerService struct {
	store repositories.Store
	loc   *time.Location
	now   func() time.Time

	// serialises read-modify-write of the counters within this process
	writeMu sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand

	listenersMu sync.RWMutex
	listeners   []LevelUpListener
}

var trackerService *TrackerService

func InitTrackerService(store repositories.Store, loc *time.Location) {
	trackerService = NewTrackerService(store, loc, time.Now, rand.NewSource(time.Now().UnixNano()))
	log.Info().Str("timezone", loc.String()).Msg("Tracker service initialized")
}

func GetTrackerService() *TrackerService {
	return trackerService
}

func NewTrackerService(store repositories.Store, loc *time.Location, clock func() time.Time, src rand.Source) *TrackerService {
	if loc == nil {
		loc = time.UTC
	}
	return &TrackerService{store: store, loc: loc, now: clock, rng: rand.New(src)}
}

func (s *TrackerService) OnLevelUp(l LevelUpListener) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, l)
	s.listenersMu.Unlock()
}

func (s *TrackerService) Location() *time.Location {
	return s.loc
}

func (s *TrackerService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *TrackerService) Today() string {
	return s.Now().Format(DateLayout)
}

// resolveDate defaults an empty date to today and rejects malformed or future dates.
func (s *TrackerService) resolveDate(date string) (string, error) {
	today := s.Today()
	if date == "" {
		return today, nil
	}
	if _, err := time.ParseInLocation(DateLayout, date, s.loc); err != nil {
		return "", ErrInvalidDate
	}
	if date > today {
		return "", ErrFutureDate
	}
	return date, nil
}

// MarkPrayer records prayed or missed for one prayer on date. The log entry
// and both counters go to the store in one write, so a failure leaves the
// prayer unmarked and the call can be retried. An empty uid is a no-op.
func (s *TrackerService) MarkPrayer(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus) (models.MarkPrayerResult, error) {
	if uid == "" {
		return models.MarkPrayerResult{}, nil
	}
	if !models.IsTrackedPrayer(prayer) {
		return models.MarkPrayerResult{}, ErrInvalidPrayer
	}
	if !status.Valid() {
		return models.MarkPrayerResult{}, ErrInvalidStatus
	}
	date, err := s.resolveDate(date)
	if err != nil {
		return models.MarkPrayerResult{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	day, err := s.store.GetDailyLog(ctx, uid, date)
	if err != nil {
		return models.MarkPrayerResult{}, persistence(err)
	}
	if day[prayer] != models.StatusUnset {
		return models.MarkPrayerResult{}, ErrAlreadyMarked
	}

	points := PointsFor(prayer, status)
	before, err := s.store.RecordPrayer(ctx, uid, date, prayer, status, points)
	if err != nil {
		return models.MarkPrayerResult{}, persistence(err)
	}

	result := models.MarkPrayerResult{
		Date:          date,
		PrayerName:    prayer,
		Status:        status,
		Message:       s.messageFor(prayer, status),
		PointsAwarded: points,
	}
	after := before + points

	progress, err := s.progressLocked(ctx, uid)
	if err != nil {
		return result, err
	}
	result.Progress = progress
	result.Level = LevelFromXP(progress.XPPoints)

	if level := LevelCrossing(before, after); level > 0 {
		result.LevelUp = true
		s.notifyLevelUp(ctx, uid, level)
	}

	log.Debug().Str("uid", uid).Str("date", date).Str("prayer", prayer).Str("status", string(status)).Int("points", points).Msg("Prayer marked")
	return result, nil
}

// AddXP adds delta to the global xp counter and returns the new total.
func (s *TrackerService) AddXP(ctx context.Context, uid string, delta int) (int, error) {
	if uid == "" || delta <= 0 {
		return 0, nil
	}

	s.writeMu.Lock()
	before, after, err := s.addXPLocked(ctx, uid, delta)
	s.writeMu.Unlock()
	if err != nil {
		return 0, err
	}

	if level := LevelCrossing(before, after); level > 0 {
		s.notifyLevelUp(ctx, uid, level)
	}
	return after, nil
}

func (s *TrackerService) addXPLocked(ctx context.Context, uid string, delta int) (int, int, error) {
	if delta <= 0 {
		return 0, 0, nil
	}
	before, err := s.store.GetXP(ctx, uid)
	if err != nil {
		return 0, 0, persistence(err)
	}
	after := before + delta
	if err := s.store.SetXP(ctx, uid, after); err != nil {
		return 0, 0, persistence(err)
	}
	return before, after, nil
}

func (s *TrackerService) notifyLevelUp(ctx context.Context, uid string, level int) {
	s.listenersMu.RLock()
	listeners := append([]LevelUpListener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	log.Info().Str("uid", uid).Int("level", level).Msg("Level up")
	for _, l := range listeners {
		l(ctx, uid, level)
	}
}

func (s *TrackerService) messageFor(prayer string, status models.PrayerStatus) string {
	pool := models.PrayedMessages
	switch {
	case status == models.StatusMissed:
		pool = models.MissedMessages
	case prayer == models.PrayerTahajjud:
		pool = models.TahajjudMessages
	}
	if len(pool) == 0 {
		return ""
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

func (s *TrackerService) progressLocked(ctx context.Context, uid string) (models.UserProgress, error) {
	rewards, err := s.store.GetRewardPoints(ctx, uid)
	if err != nil {
		return models.UserProgress{}, persistence(err)
	}
	xp, err := s.store.GetXP(ctx, uid)
	if err != nil {
		return models.UserProgress{}, persistence(err)
	}
	return models.UserProgress{RewardPoints: rewards, XPPoints: xp}, nil
}

// Progress returns counters, the derived level and totals badges.
func (s *TrackerService) Progress(ctx context.Context, uid string) (models.ProgressSummary, error) {
	if uid == "" {
		return models.ProgressSummary{}, nil
	}
	progress, err := s.progressLocked(ctx, uid)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	logs, err := s.store.GetPrayerLogs(ctx, uid)
	if err != nil {
		return models.ProgressSummary{}, persistence(err)
	}
	return summarize(progress, logs), nil
}

func summarize(progress models.UserProgress, logs models.PrayerLogs) models.ProgressSummary {
	level := LevelFromXP(progress.XPPoints)
	percent := 0.0
	if level.XPToNextLevel > 0 {
		percent = float64(level.XPIntoLevel) / float64(level.XPToNextLevel) * 100
	}
	return models.ProgressSummary{
		Progress:     progress,
		Level:        level,
		LevelPercent: percent,
		Achievements: AchievementBadges(progress.RewardPoints, logs.LoggedCount()),
	}
}

// Tracker is the streak table together with the progress summary.
func (s *TrackerService) Tracker(ctx context.Context, uid string) (models.TrackerView, error) {
	if uid == "" {
		return models.TrackerView{}, nil
	}
	logs, err := s.store.GetPrayerLogs(ctx, uid)
	if err != nil {
		return models.TrackerView{}, persistence(err)
	}
	progress, err := s.progressLocked(ctx, uid)
	if err != nil {
		return models.TrackerView{}, err
	}
	return models.TrackerView{
		Streak:   ComputeStreak(logs, s.Now()),
		Progress: summarize(progress, logs),
	}, nil
}

// ActiveStatus reports the active prayer at now and whether it has been
// marked on the date it started.
func (s *TrackerService) ActiveStatus(ctx context.Context, uid string, schedule []models.PrayerTime, now time.Time) (models.ActivePrayerStatus, error) {
	if uid == "" || len(schedule) == 0 {
		return models.ActivePrayerStatus{}, nil
	}
	active := ResolveActive(schedule, now.In(s.loc))
	date := active.At.In(s.loc).Format(DateLayout)

	day, err := s.store.GetDailyLog(ctx, uid, date)
	if err != nil {
		return models.ActivePrayerStatus{}, persistence(err)
	}
	status := day[active.Name]
	return models.ActivePrayerStatus{
		Date:   date,
		Name:   active.Name,
		Index:  active.Index,
		Status: status,
		Marked: status != models.StatusUnset,
	}, nil
}
