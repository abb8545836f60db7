package models

type StartSessionRequest struct {
	ClientID  string   `json:"clientId" binding:"required,max=128"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// Coordinates returns nil unless both latitude and longitude were sent.
func (r StartSessionRequest) Coordinates() *Coordinates {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
}
