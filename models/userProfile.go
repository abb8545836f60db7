package models

import "time"

type UserProfile struct {
	User_ID         string    `json:"uid"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	Display_Name    string    `json:"displayName"`
	Admin           bool      `json:"admin" goqu:"skipinsert"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

// Identity is the authenticated owner of a data partition.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

func (p UserProfile) Identity() Identity {
	return Identity{UID: p.User_ID, Email: p.Email, Admin: p.Admin}
}
