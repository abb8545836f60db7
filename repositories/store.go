package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/SalahTracker/models"
)

var (
	ErrUnavailable = errors.New("store unavailable")
	ErrNotFound    = errors.New("record not found")
	ErrEmailTaken  = errors.New("email already registered")
)

// Store persists one partition of tracking data per user id. Absent records
// read back as zero values.
type Store interface {
	GetPrayerLogs(ctx context.Context, uid string) (models.PrayerLogs, error)
	GetDailyLog(ctx context.Context, uid string, date string) (models.DailyLog, error)
	SetPrayerStatus(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus) error
	// RecordPrayer writes one log entry and adds points to both reward points
	// and xp in a single write. It returns the xp total before the award, or 0
	// when points is zero and only the log is written.
	RecordPrayer(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus, points int) (int, error)

	GetRewardPoints(ctx context.Context, uid string) (int, error)
	SetRewardPoints(ctx context.Context, uid string, points int) error
	GetXP(ctx context.Context, uid string) (int, error)
	SetXP(ctx context.Context, uid string, xp int) error

	GetGoodDeeds(ctx context.Context, uid string) ([]models.GoodDeedEntry, error)
	SetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry) error
	// GetGoodDeedCycle returns 0 when no cycle was stored yet.
	GetGoodDeedCycle(ctx context.Context, uid string) (int, error)
	SetGoodDeedCycle(ctx context.Context, uid string, cycle int) error
	// ResetGoodDeeds replaces the deck and stores the new cycle in a single write.
	ResetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry, cycle int) error

	GetQuranProgress(ctx context.Context, uid string, trackKey string) (models.QuranProgress, error)
	SetQuranProgress(ctx context.Context, uid string, trackKey string, progress models.QuranProgress) error

	SavePushToken(ctx context.Context, token models.PushToken) error
	GetPushTokens(ctx context.Context, uid string) ([]models.PushToken, error)
	SaveReminder(ctx context.Context, sub models.ReminderSubscription) error
	ListReminders(ctx context.Context) ([]models.ReminderSubscription, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.UserProfile) error
	GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error)
	GetUserByID(ctx context.Context, uid string) (models.UserProfile, error)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

var (
	_ Store     = (*MemoryStore)(nil)
	_ Store     = (*PostgresStore)(nil)
	_ Store     = (*FirebaseStore)(nil)
	_ UserStore = (*MemoryStore)(nil)
	_ UserStore = (*PostgresStore)(nil)
	_ UserStore = (*FirebaseStore)(nil)
)
