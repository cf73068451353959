package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"weekender/config"
)

// RegisterDateRoutes registers the weekend date resolution endpoint.
func (s *Server) RegisterDateRoutes(r *gin.Engine) {
	r.GET("/api/dates/:weekend", handleWeekendDates)
}

// handleWeekendDates resolves a weekend alias to its Thursday/Saturday
// date pair, so clients can display the range before searching.
func handleWeekendDates(c *gin.Context) {
	weekend := c.Param("weekend")
	switch weekend {
	case "this", "next", "two-weeks":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekend must be this, next, or two-weeks"})
		return
	}

	start, end := config.WeekendDates(weekend, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"weekend":    weekend,
		"start_date": start,
		"end_date":   end,
	})
}
