package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond the given sustained rate and burst.
// Used on the assistant endpoint, which fans out to a quota-bound
// generative API.
func RateLimit(perSecond rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(perSecond, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}
