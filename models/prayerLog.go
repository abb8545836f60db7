package models

type PrayerStatus string

const (
	StatusUnset  PrayerStatus = ""
	StatusPrayed PrayerStatus = "prayed"
	StatusMissed PrayerStatus = "missed"
)

func (s PrayerStatus) Valid() bool {
	return s == StatusPrayed || s == StatusMissed
}

// DailyLog maps prayer name to status for one date.
type DailyLog map[string]PrayerStatus

// Complete reports whether every tracked prayer is marked prayed.
func (d DailyLog) Complete() bool {
	for _, p := range TrackedPrayers {
		if d[p] != StatusPrayed {
			return false
		}
	}
	return true
}

// PrayerLogs maps YYYY-MM-DD to the log of that day.
type PrayerLogs map[string]DailyLog

// LoggedCount counts every marked entry, prayed or missed.
func (l PrayerLogs) LoggedCount() int {
	total := 0
	for _, day := range l {
		for _, status := range day {
			if status != StatusUnset {
				total++
			}
		}
	}
	return total
}

type PrayerLogRow struct {
	User_ID     string `json:"uid"`
	Log_Date    string `json:"date"`
	Prayer_Name string `json:"prayerName"`
	Status      string `json:"status"`
}

type MarkPrayerRequest struct {
	Status string `json:"status" binding:"required,oneof=prayed missed"`
	Date   string `json:"date"`
}

type MarkPrayerResult struct {
	Date          string       `json:"date"`
	PrayerName    string       `json:"prayerName"`
	Status        PrayerStatus `json:"status"`
	PointsAwarded int          `json:"pointsAwarded"`
	Progress      UserProgress `json:"progress"`
	Level         LevelInfo    `json:"level"`
	LevelUp       bool         `json:"levelUp"`
	Message       string       `json:"message"`
}
