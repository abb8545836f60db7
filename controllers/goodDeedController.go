package controllers

import (
	"net/http"
	"strconv"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func GetCurrentGoodDeed(c *gin.Context) {
	view, err := services.GetGoodDeedService().Current(c.Request.Context(), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func CompleteGoodDeed(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("deed_index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deed index", "details": err.Error()})
		return
	}

	card, err := services.GetGoodDeedService().CompleteCard(c.Request.Context(), currentUID(c), idx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Good deed completed", "card": card})
}

func SaveGoodDeedReflection(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("deed_index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deed index", "details": err.Error()})
		return
	}

	var req models.ReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	card, err := services.GetGoodDeedService().SaveReflection(c.Request.Context(), currentUID(c), idx, req.Reflection)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reflection saved", "card": card})
}
