package controllers

import (
	"net/http"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func SendPushNotification(c *gin.Context) {
	var request models.SendNotificationRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Get push notification service
	pushService := services.GetPushNotificationService()
	if !pushService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notification service not available"})
		return
	}

	data := map[string]string{"type": models.NotificationTypeBroadcast}
	for k, v := range request.Data {
		data[k] = v
	}

	payload := services.NotificationPayload{
		Title:    request.Title,
		Body:     request.Body,
		Data:     data,
		Sound:    request.Sound,
		Priority: request.Priority,
	}

	// Send notifications to all specified users
	err := pushService.SendNotificationToUsers(c.Request.Context(), request.UserIDs, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Push notifications sent successfully",
		"userIds": request.UserIDs,
	})
}
