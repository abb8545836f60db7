package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SalahTracker/models"
)

// parseClock reads "HH:MM", tolerating a trailing zone annotation such as "05:01 (+03)".
func parseClock(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}

func formatClock(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}

// BuildSchedule turns the six source times of a day into the tracked schedule:
// Sunrise dropped, Tahajjud prepended at its fixed time.
func BuildSchedule(apiPrayers []models.PrayerTime) ([]models.PrayerTime, error) {
	if len(apiPrayers) < len(models.SourcePrayers) {
		return nil, fmt.Errorf("%w: expected %d source times, got %d", ErrDataUnavailable, len(models.SourcePrayers), len(apiPrayers))
	}

	byName := make(map[string]string, len(apiPrayers))
	for _, p := range apiPrayers {
		byName[p.Name] = p.Time
	}

	schedule := make([]models.PrayerTime, 0, len(models.TrackedPrayers))
	schedule = append(schedule, models.PrayerTime{Name: models.PrayerTahajjud, Time: models.TahajjudTime})

	for _, name := range models.TrackedPrayers[1:] {
		raw, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: source is missing %s", ErrDataUnavailable, name)
		}
		h, m, err := parseClock(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, name, err)
		}
		schedule = append(schedule, models.PrayerTime{Name: name, Time: formatClock(h, m)})
	}

	return schedule, nil
}

func findPrayer(schedule []models.PrayerTime, name string) (models.PrayerTime, bool) {
	for _, p := range schedule {
		if p.Name == name {
			return p, true
		}
	}
	return models.PrayerTime{}, false
}

// LastThirdWindow spans the final third of the night between today's Maghrib
// and the following day's Fajr.
func LastThirdWindow(schedule []models.PrayerTime) (models.NightWindow, error) {
	maghrib, ok := findPrayer(schedule, models.PrayerMaghrib)
	if !ok {
		return models.NightWindow{}, fmt.Errorf("%w: schedule has no %s", ErrDataUnavailable, models.PrayerMaghrib)
	}
	fajr, ok := findPrayer(schedule, models.PrayerFajr)
	if !ok {
		return models.NightWindow{}, fmt.Errorf("%w: schedule has no %s", ErrDataUnavailable, models.PrayerFajr)
	}

	mh, mm, err := parseClock(maghrib.Time)
	if err != nil {
		return models.NightWindow{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	fh, fm, err := parseClock(fajr.Time)
	if err != nil {
		return models.NightWindow{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	// A fixed UTC day keeps the arithmetic free of DST shifts.
	ref := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	sunset := ref.Add(time.Duration(mh)*time.Hour + time.Duration(mm)*time.Minute)
	dawn := ref.AddDate(0, 0, 1).Add(time.Duration(fh)*time.Hour + time.Duration(fm)*time.Minute)

	night := dawn.Sub(sunset)
	start := dawn.Add(-night / 3)

	return models.NightWindow{
		Start: start.Format("15:04"),
		End:   dawn.Format("15:04"),
	}, nil
}
