package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/SalahTracker/models"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreAbsentRecordsAreZero(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	points, err := store.GetRewardPoints(ctx, "nobody")
	assert.NoError(t, err)
	assert.Equal(t, 0, points)

	cycle, err := store.GetGoodDeedCycle(ctx, "nobody")
	assert.NoError(t, err)
	assert.Equal(t, 0, cycle)

	deeds, err := store.GetGoodDeeds(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, deeds)

	day, err := store.GetDailyLog(ctx, "nobody", "2024-01-01")
	assert.NoError(t, err)
	assert.Empty(t, day)
}

func TestMemoryStorePartitionsByUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.SetPrayerStatus(ctx, "a", "2024-01-01", "Fajr", models.StatusPrayed))
	assert.NoError(t, store.SetXP(ctx, "a", 40))

	logsB, err := store.GetPrayerLogs(ctx, "b")
	assert.NoError(t, err)
	assert.Empty(t, logsB)

	xpB, err := store.GetXP(ctx, "b")
	assert.NoError(t, err)
	assert.Equal(t, 0, xpB)

	logsA, err := store.GetPrayerLogs(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPrayed, logsA["2024-01-01"]["Fajr"])
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.SetGoodDeeds(ctx, "a", []models.GoodDeedEntry{{Index: 1}}))

	deeds, _ := store.GetGoodDeeds(ctx, "a")
	deeds[0].Completed = true

	again, _ := store.GetGoodDeeds(ctx, "a")
	assert.False(t, again[0].Completed)
}

func TestMemoryStoreRecordPrayer(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	assert.NoError(t, store.SetXP(ctx, "a", 40))

	before, err := store.RecordPrayer(ctx, "a", "2024-01-01", "Fajr", models.StatusPrayed, 10)
	assert.NoError(t, err)
	assert.Equal(t, 40, before)

	before, err = store.RecordPrayer(ctx, "a", "2024-01-01", "Isha", models.StatusMissed, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, before)

	day, _ := store.GetDailyLog(ctx, "a", "2024-01-01")
	assert.Equal(t, models.DailyLog{"Fajr": models.StatusPrayed, "Isha": models.StatusMissed}, day)
	rewards, _ := store.GetRewardPoints(ctx, "a")
	xp, _ := store.GetXP(ctx, "a")
	assert.Equal(t, 10, rewards)
	assert.Equal(t, 50, xp)
}

func TestMemoryStoreResetGoodDeeds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.ResetGoodDeeds(ctx, "a", []models.GoodDeedEntry{{Index: 2}, {Index: 0}}, 3))

	deeds, _ := store.GetGoodDeeds(ctx, "a")
	cycle, _ := store.GetGoodDeedCycle(ctx, "a")
	assert.Equal(t, []models.GoodDeedEntry{{Index: 2}, {Index: 0}}, deeds)
	assert.Equal(t, 3, cycle)

	store.FailWith = errors.New("offline")
	assert.ErrorIs(t, store.ResetGoodDeeds(ctx, "a", nil, 4), ErrUnavailable)
	store.FailWith = nil
	cycle, _ = store.GetGoodDeedCycle(ctx, "a")
	assert.Equal(t, 3, cycle)
}

func TestMemoryStoreFailure(t *testing.T) {
	store := NewMemoryStore()
	store.FailWith = errors.New("offline")

	err := store.SetRewardPoints(context.Background(), "a", 10)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = store.GetPrayerLogs(context.Background(), "a")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMemoryStoreUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := models.UserProfile{User_ID: "u1", Email: "Someone@Example.com", Password: "hash"}
	assert.NoError(t, store.CreateUser(ctx, user))
	assert.ErrorIs(t, store.CreateUser(ctx, models.UserProfile{User_ID: "u2", Email: "someone@example.com"}), ErrEmailTaken)

	found, err := store.GetUserByEmail(ctx, "SOMEONE@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", found.User_ID)

	_, err = store.GetUserByID(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}
