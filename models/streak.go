package models

type Badge struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type StreakDay struct {
	Date     string       `json:"date"`
	Statuses []PrayerCell `json:"statuses"`
	Complete bool         `json:"complete"`
}

type PrayerCell struct {
	Name   string       `json:"name"`
	Status PrayerStatus `json:"status"`
}

type StreakSummary struct {
	Current         int         `json:"current"`
	LongestInWindow int         `json:"longestInWindow"`
	Days            []StreakDay `json:"days"`
	Badges          []Badge     `json:"badges"`
	ProgressMax     int         `json:"progressMax"`
	ProgressPercent float64     `json:"progressPercent"`
}

type TrackerView struct {
	Streak   StreakSummary   `json:"streak"`
	Progress ProgressSummary `json:"progress"`
}
