package models

import "time"

type PushToken struct {
	User_ID    string    `json:"uid"`
	Push_Token string    `json:"pushToken"`
	Platform   string    `json:"platform"`
	Updated_At time.Time `json:"updatedAt" goqu:"skipinsert"`
}

type PushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required,min=10,max=500"`
	Platform  string `json:"platform" binding:"required,oneof=ios android web"`
}

// ReminderSubscription asks for a push notification when any of Prayers begins.
type ReminderSubscription struct {
	UID       string   `json:"uid"`
	PushToken string   `json:"pushToken"`
	Platform  string   `json:"platform"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Prayers   []string `json:"prayers"`
}

type ReminderRequest struct {
	PushToken string   `json:"pushToken" binding:"required,min=10,max=500"`
	Platform  string   `json:"platform" binding:"required,oneof=ios android web"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Prayers   []string `json:"prayers" binding:"required,min=1,dive,required"`
}
