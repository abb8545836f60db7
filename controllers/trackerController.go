package controllers

import (
	"net/http"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func MarkPrayer(c *gin.Context) {
	var req models.MarkPrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := services.GetTrackerService().MarkPrayer(
		c.Request.Context(),
		currentUID(c),
		req.Date,
		c.Param("prayer_name"),
		models.PrayerStatus(req.Status),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func GetTracker(c *gin.Context) {
	view, err := services.GetTrackerService().Tracker(c.Request.Context(), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func GetProgress(c *gin.Context) {
	summary, err := services.GetTrackerService().Progress(c.Request.Context(), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
