package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/SalahTracker/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetCurrentGoodDeed(t *testing.T) {
	tests := []struct {
		name          string
		rewards       int
		expectedState string
		expectCard    bool
	}{
		{"no rewards yet", 0, models.DeedsStateNoneUnlocked, false},
		{"first card unlocked", 100, models.DeedsStateInProgress, true},
		{"three cards unlocked", 350, models.DeedsStateInProgress, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()
			_ = store.SetRewardPoints(context.Background(), "user-1", tt.rewards)

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Request = NewRequest(t, "GET", "/good-deeds/current", nil)

			GetCurrentGoodDeed(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var view models.GoodDeedView
			_ = json.Unmarshal(w.Body.Bytes(), &view)
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, tt.expectCard, view.Card != nil)
			assert.Equal(t, 1, view.Cycle)
		})
	}
}

// Test CompleteGoodDeed and SaveGoodDeedReflection on the card currently shown
func TestCompleteAndReflectGoodDeed(t *testing.T) {
	store, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
	defer cleanup()
	_ = store.SetRewardPoints(context.Background(), "user-1", 100)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = NewRequest(t, "GET", "/good-deeds/current", nil)
	GetCurrentGoodDeed(c)

	var view models.GoodDeedView
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	if !assert.NotNil(t, view.Card) {
		return
	}
	idx := strconv.Itoa(view.Card.Index)

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "deed_index", Value: idx}}
	c.Request = NewRequest(t, "PUT", "/good-deeds/"+idx+"/reflection", gin.H{"reflection": "Helped my neighbour"})
	SaveGoodDeedReflection(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "deed_index", Value: idx}}
	c.Request = NewRequest(t, "POST", "/good-deeds/"+idx+"/complete", nil)
	CompleteGoodDeed(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Card models.GoodDeedCard `json:"card"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Card.Completed)
	assert.Equal(t, "Helped my neighbour", response.Card.Reflection)
}

func TestCompleteGoodDeedErrors(t *testing.T) {
	tests := []struct {
		name           string
		deedIndex      string
		expectedStatus int
	}{
		{"invalid index", "abc", http.StatusBadRequest},
		{"card not in deck", "99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = gin.Params{{Key: "deed_index", Value: tt.deedIndex}}
			c.Request = NewRequest(t, "POST", "/good-deeds/"+tt.deedIndex+"/complete", nil)

			CompleteGoodDeed(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
