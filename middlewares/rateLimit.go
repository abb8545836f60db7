package middlewares

import (
	"net/http"
	"sync"

	"github.com/SalahTracker/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	limiters = make(map[string]*rate.Limiter)
	mu       sync.Mutex
)

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := limiters[key]
	if !exists {
		limiter = rate.NewLimiter(r, b)
		limiters[key] = limiter
	}
	return limiter
}

func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + keyFunc(c)
		limiter := getLimiter(key, r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}

func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserKey limits per signed-in user, falling back to the client address.
func UserKey(c *gin.Context) string {
	if user, ok := c.Get("currentUser"); ok {
		if profile, ok := user.(models.UserProfile); ok && profile.User_ID != "" {
			return "uid:" + profile.User_ID
		}
	}
	return c.ClientIP()
}
