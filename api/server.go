package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"weekender/pipeline"
)

// CacheClearer is the subset of the cache store the API needs for the
// admin endpoint. Nil disables cache clearing.
type CacheClearer interface {
	Clear(ctx context.Context, city string) (int, error)
}

// Server holds the request handlers' dependencies.
type Server struct {
	pipeline *pipeline.Pipeline
	clearer  CacheClearer
}

func NewServer(p *pipeline.Pipeline, clearer CacheClearer) *Server {
	return &Server{pipeline: p, clearer: clearer}
}

// corsMiddleware lets browser frontends on other origins call the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	s.RegisterSearchRoutes(r)
	s.RegisterDateRoutes(r)
	s.RegisterCacheRoutes(r)
	s.RegisterHealthRoutes(r)
	return r
}
