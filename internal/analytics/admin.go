package analytics

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logger"
)

// StatsSource is the part of Store the admin endpoint needs.
type StatsSource interface {
	Stats(ctx context.Context) (*Stats, error)
}

// RequireToken rejects requests whose bearer token does not match token.
func RequireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// StatsHandler serves visit statistics as JSON.
func StatsHandler(source StatsSource, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := source.Stats(c.Request.Context())
		if err != nil {
			log.Error("Error loading admin stats", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
