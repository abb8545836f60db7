package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

// parseCoordinates reads lat/lng from the query. Both are optional but must
// be sent together.
func parseCoordinates(c *gin.Context) (*models.Coordinates, error) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, errors.New("lat and lng must be sent together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid lat %q", latRaw)
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid lng %q", lngRaw)
	}
	return &models.Coordinates{Latitude: lat, Longitude: lng}, nil
}

func parseScheduleDate(c *gin.Context, schedules *services.ScheduleService) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return schedules.Now(), nil
	}
	date, err := time.ParseInLocation(services.DateLayout, raw, schedules.Location())
	if err != nil {
		return time.Time{}, services.ErrInvalidDate
	}
	return date, nil
}

func placeholderSchedule() []models.PrayerTime {
	prayers := make([]models.PrayerTime, 0, len(models.TrackedPrayers))
	for _, name := range models.TrackedPrayers {
		prayers = append(prayers, models.PrayerTime{Name: name, Time: models.PlaceholderTime})
	}
	return prayers
}

func GetSchedule(c *gin.Context) {
	schedules := services.GetScheduleService()

	coords, err := parseCoordinates(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseScheduleDate(c, schedules)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := schedules.ForDate(c.Request.Context(), date, coords)
	if errors.Is(err, services.ErrDataUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     err.Error(),
			"prayers":   placeholderSchedule(),
			"lastThird": models.NightWindow{Start: models.PlaceholderTime, End: models.PlaceholderTime},
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetCountdown is a single countdown tick for clients without a session.
func GetCountdown(c *gin.Context) {
	schedules := services.GetScheduleService()

	coords, err := parseCoordinates(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseScheduleDate(c, schedules)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := schedules.ForDate(c.Request.Context(), date, coords)
	if errors.Is(err, services.ErrDataUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     err.Error(),
			"countdown": services.PlaceholderCountdown(),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countdown": services.Tick(schedule.Prayers, schedules.Now()),
		"stale":     schedule.Stale,
	})
}
