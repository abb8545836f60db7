package services

import (
	"time"

	"github.com/SalahTracker/models"
)

// clockOn pins an HH:MM clock time to the calendar day of day, in day's location.
func clockOn(day time.Time, clock string) (time.Time, bool) {
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, h, m, 0, 0, day.Location()), true
}

// ResolveNext returns the first entry strictly after now, or tomorrow's
// first entry once today's are all past.
func ResolveNext(schedule []models.PrayerTime, now time.Time) models.ScheduledPrayer {
	if len(schedule) == 0 {
		return models.ScheduledPrayer{}
	}

	for i, p := range schedule {
		at, ok := clockOn(now, p.Time)
		if ok && at.After(now) {
			return models.ScheduledPrayer{Name: p.Name, Time: p.Time, Index: i, At: at}
		}
	}

	first := schedule[0]
	at, ok := clockOn(now.AddDate(0, 0, 1), first.Time)
	if !ok {
		at, _ = clockOn(now.AddDate(0, 0, 1), models.TahajjudTime)
	}
	return models.ScheduledPrayer{Name: first.Name, Time: first.Time, Index: 0, At: at}
}

// ResolveActive returns the entry preceding ResolveNext, pinned to its most
// recent occurrence at or before now.
func ResolveActive(schedule []models.PrayerTime, now time.Time) models.ScheduledPrayer {
	if len(schedule) == 0 {
		return models.ScheduledPrayer{}
	}

	next := ResolveNext(schedule, now)
	idx := (next.Index - 1 + len(schedule)) % len(schedule)
	p := schedule[idx]

	at, ok := clockOn(now, p.Time)
	if !ok {
		return models.ScheduledPrayer{Name: p.Name, Time: p.Time, Index: idx, At: now}
	}
	if at.After(now) {
		at = at.AddDate(0, 0, -1)
	}
	return models.ScheduledPrayer{Name: p.Name, Time: p.Time, Index: idx, At: at}
}
