package controllers

import (
	"errors"
	"net/http"

	"github.com/SalahTracker/models"
	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StartSession loads today's schedule and starts the periodic countdown and
// status jobs for the client. A previous session on the same client is
// replaced. Without a schedule the session runs on placeholders.
func StartSession(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	schedule, err := services.GetScheduleService().Today(c.Request.Context(), req.Coordinates())
	if err != nil && !errors.Is(err, services.ErrDataUnavailable) {
		respondError(c, err)
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("client", req.ClientID).Msg("Starting session without a schedule")
	}

	sessions := services.GetSessionManager()
	session, startErr := sessions.Start(req.ClientID, currentUser.Identity(), schedule)
	if startErr != nil {
		respondError(c, startErr)
		return
	}

	response := gin.H{
		"clientId":  session.ClientID,
		"schedule":  session.Schedule(),
		"countdown": session.Countdown(services.GetScheduleService().Now()),
		"status":    session.Status(),
	}
	if err != nil {
		response["warning"] = services.ErrDataUnavailable.Error()
	}
	c.JSON(http.StatusOK, response)
}

func StopSession(c *gin.Context) {
	if err := services.GetSessionManager().Stop(c.Param("client_id"), currentUID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session stopped"})
}

func GetSessionStatus(c *gin.Context) {
	session, err := services.GetSessionManager().Get(c.Param("client_id"), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countdown": session.Countdown(services.GetScheduleService().Now()),
		"status":    session.Status(),
	})
}

// StreamSession pushes countdown ticks and status refreshes as server-sent
// events until the client disconnects or the session stops.
func StreamSession(c *gin.Context) {
	session, err := services.GetSessionManager().Get(c.Param("client_id"), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	events, unsubscribe := session.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	countdown := session.Countdown(services.GetScheduleService().Now())
	c.SSEvent(services.SessionEventCountdown, services.SessionEvent{Type: services.SessionEventCountdown, Countdown: &countdown})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(ev.Type, ev)
			c.Writer.Flush()
		}
	}
}

func RecordSessionAudio(c *gin.Context) {
	session, err := services.GetSessionManager().Get(c.Param("client_id"), currentUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.AudioProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	saved, err := session.RecordAudio(c.Request.Context(), req.TrackKey, *req.PositionSeconds, req.Event)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}
