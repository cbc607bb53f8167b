package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Session gates the API on an active session. There is no credential
// verification behind it: login hands out a token and this only checks
// one is present, which is the whole auth contract of the dashboard.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "no active session",
			})
			return
		}
		c.Set("session_token", token)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
