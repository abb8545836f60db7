package controllers

import (
	"net/http"

	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func GetQuranTracks(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetQuranService().Tracks())
}

func GetQuranProgress(c *gin.Context) {
	key := c.Param("track_key")

	progress, err := services.GetQuranService().Progress(c.Request.Context(), currentUID(c), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trackKey": key, "progress": progress})
}
