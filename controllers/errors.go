package controllers

import (
	"errors"
	"net/http"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrPersistenceUnavailable),
		errors.Is(err, services.ErrDataUnavailable),
		errors.Is(err, services.ErrPushUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidPrayer),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrFutureDate):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyMarked),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrUnknownTrack),
		errors.Is(err, services.ErrInvalidSession):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status its sentinel maps to.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	switch {
	case errors.Is(err, services.ErrPersistenceUnavailable):
		c.JSON(status, gin.H{"error": services.ErrPersistenceUnavailable.Error(), "details": err.Error()})
	case errors.Is(err, services.ErrDataUnavailable):
		c.JSON(status, gin.H{"error": services.ErrDataUnavailable.Error(), "details": err.Error()})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func currentUID(c *gin.Context) string {
	user, ok := c.Get("currentUser")
	if !ok {
		return ""
	}
	profile, ok := user.(models.UserProfile)
	if !ok {
		return ""
	}
	return profile.User_ID
}
