package models

import "time"

const (
	ProgressRingRadius = 54.0
	PlaceholderTime    = "--:--"
)

type Countdown struct {
	Remaining        time.Duration `json:"-"`
	RemainingSeconds int64         `json:"remainingSeconds"`
	RemainingText    string        `json:"remaining"`
	NextName         string        `json:"nextName"`
	NextIndex        int           `json:"nextIndex"`
	NextAt           time.Time     `json:"nextAt"`
	ActiveName       string        `json:"activeName"`
	ActiveIndex      int           `json:"activeIndex"`
	ProgressFraction float64       `json:"progressFraction"`
	DashOffset       float64       `json:"dashOffset"`
	Circumference    float64       `json:"circumference"`
}

// ActivePrayerStatus feeds the mark-prayer button of a client.
type ActivePrayerStatus struct {
	Date   string       `json:"date"`
	Name   string       `json:"name"`
	Index  int          `json:"index"`
	Status PrayerStatus `json:"status"`
	Marked bool         `json:"marked"`
}
