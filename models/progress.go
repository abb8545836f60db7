package models

type UserProgress struct {
	RewardPoints int `json:"rewardPoints"`
	XPPoints     int `json:"xpPoints"`
}

type LevelInfo struct {
	Level         int `json:"level"`
	XPIntoLevel   int `json:"xpIntoLevel"`
	XPToNextLevel int `json:"xpToNextLevel"`
}

type ProgressSummary struct {
	Progress     UserProgress `json:"progress"`
	Level        LevelInfo    `json:"level"`
	LevelPercent float64      `json:"levelPercent"`
	Achievements []Badge      `json:"achievements"`
}

type UserProgressRow struct {
	User_ID         string `json:"uid"`
	Reward_Points   int    `json:"rewardPoints"`
	Xp_Points       int    `json:"xpPoints"`
	Good_Deed_Cycle int    `json:"goodDeedCycle"`
}
