package services

import (
	"testing"
	"time"

	"github.com/SalahTracker/models"
	"github.com/stretchr/testify/assert"
)

var riyadh = time.FixedZone("AST", 3*60*60)

func at(day int, h, m, s int) time.Time {
	return time.Date(2024, time.March, day, h, m, s, 0, riyadh)
}

func TestResolveNextAndActive(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		expectedNext   string
		expectedNextIx int
		expectedNextAt time.Time
		expectedActive string
		expectedActIx  int
		expectedActAt  time.Time
	}{
		{
			name:           "afternoon between asr and maghrib",
			now:            at(10, 17, 0, 0),
			expectedNext:   "Maghrib",
			expectedNextIx: 4,
			expectedNextAt: at(10, 18, 20, 0),
			expectedActive: "Asr",
			expectedActIx:  3,
			expectedActAt:  at(10, 15, 45, 0),
		},
		{
			name:           "after isha wraps to tomorrow tahajjud",
			now:            at(10, 22, 0, 0),
			expectedNext:   "Tahajjud",
			expectedNextIx: 0,
			expectedNextAt: at(11, 2, 30, 0),
			expectedActive: "Isha",
			expectedActIx:  5,
			expectedActAt:  at(10, 19, 45, 0),
		},
		{
			name:           "after midnight before tahajjud",
			now:            at(10, 1, 0, 0),
			expectedNext:   "Tahajjud",
			expectedNextIx: 0,
			expectedNextAt: at(10, 2, 30, 0),
			expectedActive: "Isha",
			expectedActIx:  5,
			expectedActAt:  at(9, 19, 45, 0),
		},
		{
			name:           "exact prayer instant is not next",
			now:            at(10, 12, 15, 0),
			expectedNext:   "Asr",
			expectedNextIx: 3,
			expectedNextAt: at(10, 15, 45, 0),
			expectedActive: "Dhuhr",
			expectedActIx:  2,
			expectedActAt:  at(10, 12, 15, 0),
		},
		{
			name:           "one second before tahajjud",
			now:            at(10, 2, 29, 59),
			expectedNext:   "Tahajjud",
			expectedNextIx: 0,
			expectedNextAt: at(10, 2, 30, 0),
			expectedActive: "Isha",
			expectedActIx:  5,
			expectedActAt:  at(9, 19, 45, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := ResolveNext(testSchedule(), tt.now)
			active := ResolveActive(testSchedule(), tt.now)

			assert.Equal(t, tt.expectedNext, next.Name)
			assert.Equal(t, tt.expectedNextIx, next.Index)
			assert.True(t, tt.expectedNextAt.Equal(next.At), "next at %v", next.At)
			assert.True(t, next.At.After(tt.now))

			assert.Equal(t, tt.expectedActive, active.Name)
			assert.Equal(t, tt.expectedActIx, active.Index)
			assert.True(t, tt.expectedActAt.Equal(active.At), "active at %v", active.At)
			assert.False(t, active.At.After(tt.now))
		})
	}
}

func TestResolveNextIsTotal(t *testing.T) {
	start := at(10, 0, 0, 0)
	for minute := 0; minute < 24*60; minute += 7 {
		now := start.Add(time.Duration(minute) * time.Minute)
		next := ResolveNext(testSchedule(), now)

		assert.NotEmpty(t, next.Name)
		assert.True(t, next.At.After(now), "now=%v next=%v", now, next.At)
		assert.True(t, next.Index >= 0 && next.Index < 6)
	}
}

func TestTick(t *testing.T) {
	now := at(10, 17, 0, 0)

	countdown := Tick(testSchedule(), now)

	assert.Equal(t, "Maghrib", countdown.NextName)
	assert.Equal(t, "Asr", countdown.ActiveName)
	assert.Equal(t, "01:20:00", countdown.RemainingText)
	assert.Equal(t, int64(80*60), countdown.RemainingSeconds)
	// 75 of 155 minutes elapsed
	assert.InDelta(t, 75.0/155.0, countdown.ProgressFraction, 1e-9)
	assert.InDelta(t, RingCircumference()*(1-75.0/155.0), countdown.DashOffset, 1e-9)
}

func TestTickFloorsRemaining(t *testing.T) {
	now := at(10, 17, 0, 0).Add(400 * time.Millisecond)

	countdown := Tick(testSchedule(), now)

	assert.Equal(t, "01:19:59", countdown.RemainingText)
}

func TestProgressFractionMonotonic(t *testing.T) {
	active := at(10, 15, 45, 0)
	next := at(10, 18, 20, 0)

	prev := -1.0
	for now := active.Add(-time.Minute); !now.After(next.Add(time.Minute)); now = now.Add(5 * time.Minute) {
		p := ProgressFraction(active, next, now)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestProgressFractionDegenerate(t *testing.T) {
	same := at(10, 12, 0, 0)
	assert.Equal(t, 1.0, ProgressFraction(same, same, same))
	assert.Equal(t, 1.0, ProgressFraction(same, same.Add(-time.Minute), same))
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second + 900*time.Millisecond, "01:02:03"},
		{30 * time.Hour, "23:59:59"},
		{-5 * time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCountdown(tt.in))
	}
}

func TestPlaceholderCountdown(t *testing.T) {
	c := PlaceholderCountdown()
	assert.Equal(t, models.PlaceholderTime, c.RemainingText)
	assert.Equal(t, -1, c.NextIndex)
}
