package services

import "github.com/SalahTracker/models"

const (
	FirstLevelThreshold = 50
	PrayerPoints        = 10
	TahajjudPoints      = 20
)

// LevelFromXP derives the level from cumulative xp. Each threshold is 1.5x
// the previous one, rounded down.
func LevelFromXP(xp int) models.LevelInfo {
	if xp < 0 {
		xp = 0
	}
	level, next := 1, FirstLevelThreshold
	for xp >= next {
		level++
		xp -= next
		next = next * 3 / 2
	}
	return models.LevelInfo{Level: level, XPIntoLevel: xp, XPToNextLevel: next}
}

// PointsFor is the reward and xp delta for marking prayer with status.
func PointsFor(prayer string, status models.PrayerStatus) int {
	if status != models.StatusPrayed {
		return 0
	}
	if prayer == models.PrayerTahajjud {
		return TahajjudPoints
	}
	return PrayerPoints
}

// LevelCrossing reports the final level reached when xp moves from before to after,
// or 0 when no threshold was crossed.
func LevelCrossing(before, after int) int {
	from := LevelFromXP(before).Level
	to := LevelFromXP(after).Level
	if to > from {
		return to
	}
	return 0
}
