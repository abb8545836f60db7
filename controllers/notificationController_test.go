package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Test SendPushNotification - request validation and the disabled FCM path
func TestSendPushNotification(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "push not configured",
			body:           gin.H{"userIds": []string{"user-1"}, "title": "Jumu'ah", "body": "Do not forget Surah Al-Kahf"},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "no recipients",
			body:           gin.H{"userIds": []string{}, "title": "Jumu'ah", "body": "Do not forget Surah Al-Kahf"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing title",
			body:           gin.H{"userIds": []string{"user-1"}, "body": "Do not forget Surah Al-Kahf"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := SetupTestStore(t, StaticPrayerTimes{Times: MockTimings()})
			defer cleanup()

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUser(), true)
			c.Request = NewRequest(t, "POST", "/notifications/send", tt.body)

			SendPushNotification(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			assert.NotNil(t, response["error"])
		})
	}
}
