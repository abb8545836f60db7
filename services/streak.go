package services

import (
	"math"
	"time"

	"github.com/SalahTracker/models"
)

const (
	DateLayout       = "2006-01-02"
	StreakWindowDays = 7
)

var streakBadges = []struct {
	days  int
	badge models.Badge
}{
	{3, models.Badge{Key: "streak_3", Label: "3-Day Streak"}},
	{7, models.Badge{Key: "streak_7", Label: "7-Day Streak"}},
	{30, models.Badge{Key: "streak_30", Label: "30-Day Streak"}},
	{100, models.Badge{Key: "streak_100", Label: "100-Day Streak"}},
}

// CurrentStreak counts consecutive complete days walking back from today.
// An incomplete today means no streak.
func CurrentStreak(logs models.PrayerLogs, today time.Time) int {
	count := 0
	for day := today; logs[day.Format(DateLayout)].Complete(); day = day.AddDate(0, 0, -1) {
		count++
	}
	return count
}

func StreakBadges(streak int) []models.Badge {
	badges := []models.Badge{}
	for _, b := range streakBadges {
		if streak >= b.days {
			badges = append(badges, b.badge)
		}
	}
	return badges
}

// StreakProgressMax is the denominator of the streak progress bar for the tier streak is in.
func StreakProgressMax(streak int) int {
	switch {
	case streak >= 30:
		return 100
	case streak >= 7:
		return 30
	case streak >= 3:
		return 7
	default:
		return 3
	}
}

func ComputeStreak(logs models.PrayerLogs, today time.Time) models.StreakSummary {
	days := make([]models.StreakDay, 0, StreakWindowDays)
	run, longest := 0, 0

	for i := 0; i < StreakWindowDays; i++ {
		date := today.AddDate(0, 0, -i).Format(DateLayout)
		log := logs[date]

		cells := make([]models.PrayerCell, 0, len(models.TrackedPrayers))
		for _, name := range models.TrackedPrayers {
			cells = append(cells, models.PrayerCell{Name: name, Status: log[name]})
		}

		complete := log.Complete()
		if complete {
			run++
		} else {
			run = 0
		}
		if run > longest {
			longest = run
		}

		days = append(days, models.StreakDay{Date: date, Statuses: cells, Complete: complete})
	}

	current := CurrentStreak(logs, today)
	denom := StreakProgressMax(current)

	return models.StreakSummary{
		Current:         current,
		LongestInWindow: longest,
		Days:            days,
		Badges:          StreakBadges(current),
		ProgressMax:     denom,
		ProgressPercent: math.Min(float64(current)/float64(denom)*100, 100),
	}
}

// AchievementBadges are the lifetime milestones shown next to the reward total.
func AchievementBadges(rewards int, loggedCount int) []models.Badge {
	badges := []models.Badge{}
	if rewards >= 500 {
		badges = append(badges, models.Badge{Key: "rewards_500", Label: "500 Rewards"})
	}
	if rewards >= 100 {
		badges = append(badges, models.Badge{Key: "rewards_100", Label: "100 Rewards"})
	}
	if loggedCount >= 100 {
		badges = append(badges, models.Badge{Key: "prayers_100", Label: "100 Prayers"})
	}
	if loggedCount >= 50 {
		badges = append(badges, models.Badge{Key: "prayers_50", Label: "50 Prayers"})
	}
	return badges
}
