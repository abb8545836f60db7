package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SalahTracker/services"
	"github.com/gin-gonic/gin"
)

func CheckAuth(c *gin.Context) {

	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return
	}

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
		return
	}

	accounts := services.GetAccountService()
	if accounts == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication not configured"})
		return
	}

	user, admin, err := accounts.Authenticate(c.Request.Context(), authToken[1])
	if errors.Is(err, services.ErrPersistenceUnavailable) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load user profile", "details": err.Error()})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.Set("currentUser", user)
	c.Set("admin", admin)

	c.Next()

}
