package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weekender/types"
)

// RegisterCacheRoutes registers cache administration endpoints.
func (s *Server) RegisterCacheRoutes(r *gin.Engine) {
	r.DELETE("/api/cache", s.handleClearCache)
}

// handleClearCache drops cached provider responses. An optional ?city=
// query restricts the clear to one city's keys.
func (s *Server) handleClearCache(c *gin.Context) {
	if s.clearer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache clearing not available without a cache backend"})
		return
	}

	deleted, err := s.clearer.Clear(c.Request.Context(), c.Query("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "failed to clear cache: " + err.Error(),
			"error_type": types.ErrCacheUnavailable,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "cleared",
		"deleted": deleted,
	})
}
