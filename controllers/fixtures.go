package controllers

import (
	"time"

	"github.com/SalahTracker/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_ID:         "user-1",
		Email:           "test@example.com",
		Display_Name:    "Test User",
		Admin:           false,
		Datetime_Create: time.Now(),
	}
}

// MockUserWithPassword creates a sample user with a bcrypt hashed password
// Password is "password123" - use this in tests
func MockUserWithPassword() models.UserProfile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := MockUser()
	user.Password = string(hashedPassword)
	return user
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.UserProfile {
	return models.UserProfile{
		User_ID:         "admin-1",
		Email:           "admin@example.com",
		Display_Name:    "Admin User",
		Admin:           true,
		Datetime_Create: time.Now(),
	}
}

// MockCoordinates is the default location (Riyadh)
func MockCoordinates() models.Coordinates {
	return models.Coordinates{Latitude: 24.7136, Longitude: 46.6753}
}

// MockTimings returns a day of timings as the prayer times source reports them
func MockTimings() []models.PrayerTime {
	return []models.PrayerTime{
		{Name: models.PrayerFajr, Time: "04:30"},
		{Name: models.PrayerSunrise, Time: "05:50"},
		{Name: models.PrayerDhuhr, Time: "12:05"},
		{Name: models.PrayerAsr, Time: "15:30"},
		{Name: models.PrayerMaghrib, Time: "18:10"},
		{Name: models.PrayerIsha, Time: "19:40"},
	}
}
