package services

import (
	"fmt"
	"math"
	"time"

	"github.com/SalahTracker/models"
)

const maxDisplaySeconds = 24*60*60 - 1

// FormatCountdown renders d as HH:MM:SS, clamped to 00:00:00..23:59:59.
func FormatCountdown(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs > maxDisplaySeconds {
		secs = maxDisplaySeconds
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}

// ProgressFraction is elapsed/total clamped to [0,1]; 1 when total is not positive.
func ProgressFraction(active, next, now time.Time) float64 {
	total := next.Sub(active)
	if total <= 0 {
		return 1
	}
	p := float64(now.Sub(active)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func RingCircumference() float64 {
	return 2 * math.Pi * models.ProgressRingRadius
}

func Tick(schedule []models.PrayerTime, now time.Time) models.Countdown {
	next := ResolveNext(schedule, now)
	active := ResolveActive(schedule, now)

	remaining := next.At.Sub(now).Truncate(time.Second)
	progress := ProgressFraction(active.At, next.At, now)
	circumference := RingCircumference()

	return models.Countdown{
		Remaining:        remaining,
		RemainingSeconds: int64(remaining / time.Second),
		RemainingText:    FormatCountdown(remaining),
		NextName:         next.Name,
		NextIndex:        next.Index,
		NextAt:           next.At,
		ActiveName:       active.Name,
		ActiveIndex:      active.Index,
		ProgressFraction: progress,
		DashOffset:       circumference * (1 - progress),
		Circumference:    circumference,
	}
}

// PlaceholderCountdown is what clients show while no schedule is available.
func PlaceholderCountdown() models.Countdown {
	circumference := RingCircumference()
	return models.Countdown{
		RemainingText: models.PlaceholderTime,
		NextName:      models.PlaceholderTime,
		NextIndex:     -1,
		ActiveIndex:   -1,
		DashOffset:    circumference,
		Circumference: circumference,
	}
}
