package models

const (
	NotificationTypeLevelUp        = "LEVEL_UP"
	NotificationTypePrayerReminder = "PRAYER_REMINDER"
	NotificationTypeBroadcast      = "BROADCAST"
)

type SendNotificationRequest struct {
	UserIDs  []string          `json:"userIds" binding:"required,min=1"`
	Title    string            `json:"title" binding:"required"`
	Body     string            `json:"body" binding:"required"`
	Data     map[string]string `json:"data"`
	Sound    string            `json:"sound"`
	Priority string            `json:"priority"`
}
