package models

import "time"

const (
	PrayerTahajjud = "Tahajjud"
	PrayerFajr     = "Fajr"
	PrayerSunrise  = "Sunrise"
	PrayerDhuhr    = "Dhuhr"
	PrayerAsr      = "Asr"
	PrayerMaghrib  = "Maghrib"
	PrayerIsha     = "Isha"

	TahajjudTime = "02:30"
)

// TrackedPrayers is the canonical schedule order.
var TrackedPrayers = []string{
	PrayerTahajjud,
	PrayerFajr,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}

// SourcePrayers are the names the prayer-times source reports for a day.
var SourcePrayers = []string{
	PrayerFajr,
	PrayerSunrise,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}

func IsTrackedPrayer(name string) bool {
	for _, p := range TrackedPrayers {
		if p == name {
			return true
		}
	}
	return false
}

func PrayerIndex(name string) int {
	for i, p := range TrackedPrayers {
		if p == name {
			return i
		}
	}
	return -1
}

type PrayerTime struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type NightWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Schedule struct {
	Date      string       `json:"date"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Prayers   []PrayerTime `json:"prayers"`
	LastThird NightWindow  `json:"lastThird"`
	Stale     bool         `json:"stale"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// ScheduledPrayer is a schedule entry pinned to a concrete instant.
type ScheduledPrayer struct {
	Name  string    `json:"name"`
	Time  string    `json:"time"`
	Index int       `json:"index"`
	At    time.Time `json:"at"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
