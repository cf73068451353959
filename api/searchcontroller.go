package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"weekender/config"
	"weekender/pipeline"
	"weekender/types"
)

// RegisterSearchRoutes registers the search endpoints.
func (s *Server) RegisterSearchRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.POST("/search", s.handleSearch)
	g.POST("/search/:category", s.handleCategorySearch)
}

// SearchRequest is the body for POST /api/search. Either a weekend alias
// ("this", "next", "two-weeks") or an explicit date pair scopes the search;
// explicit dates win when both are present.
type SearchRequest struct {
	City      string `json:"city" binding:"required"`
	Weekend   string `json:"weekend"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// handleSearch runs the full pipeline for every category.
func (s *Server) handleSearch(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.RequestTimeout)
	defer cancel()

	result := s.pipeline.Run(ctx, req)
	c.JSON(http.StatusOK, result)
}

// handleCategorySearch runs a single category pipeline.
func (s *Server) handleCategorySearch(c *gin.Context) {
	category, ok := parseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + c.Param("category")})
		return
	}

	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.RequestTimeout)
	defer cancel()

	result := s.pipeline.RunCategory(ctx, category, req)
	c.JSON(http.StatusOK, result)
}

func bindSearchRequest(c *gin.Context) (pipeline.Request, bool) {
	var body SearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.Request{}, false
	}

	start, end := body.StartDate, body.EndDate
	if start == "" || end == "" {
		start, end = config.WeekendDates(body.Weekend, time.Now())
	}

	return pipeline.Request{City: body.City, StartDate: start, EndDate: end}, true
}

func parseCategory(raw string) (types.Category, bool) {
	switch types.Category(raw) {
	case types.CategoryConcerts, types.CategoryDining, types.CategoryEvents, types.CategoryLocations:
		return types.Category(raw), true
	}
	return "", false
}
