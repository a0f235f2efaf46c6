// Package apikey provides the shared-secret header check applied to every API route.
package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultHeader is the request header carrying the API key when none is configured.
const DefaultHeader = "X-API-Key"

// Required returns a Gin middleware that rejects requests whose header does not
// carry the expected API key.
func Required(header, expected string) gin.HandlerFunc {
	if header == "" {
		header = DefaultHeader
	}
	return func(c *gin.Context) {
		// Server misconfiguration (API key not set)
		if expected == "" {
			slog.Error("api key is not configured", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		got := c.GetHeader(header)
		if got == "" {
			slog.Warn("missing api key", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			slog.Warn("invalid api key", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}
