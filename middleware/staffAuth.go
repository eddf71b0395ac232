package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gutterbook/config"
)

// StaffAuthMiddleware guards the admin routes. Staff tools send the key
// either as a Bearer token or in the X-Admin-Token header.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		expected := config.AppConfig.AdminAPIKey
		if expected == "" || token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized staff access"})
			return
		}

		c.Set("isStaff", true)
		c.Next()
	}
}
