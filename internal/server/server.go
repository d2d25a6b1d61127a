// Package server exposes the aggregator over a polling HTTP API with a small
// self-refreshing dashboard.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradepulse/momentum-scanner/internal/aggregator"
)

// Server serves aggregator snapshots and accepts configuration updates.
type Server struct {
	agg *aggregator.Aggregator
}

// New creates a server backed by agg.
func New(agg *aggregator.Aggregator) *Server {
	return &Server{agg: agg}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	api.GET("/snapshot", s.handleSnapshot)
	api.PUT("/config", s.handleSetConfig)

	r.GET("/", s.handleDashboard)

	return r
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.agg.Snapshot())
}

type configRequest struct {
	LookbackSeconds  int     `json:"lookback_seconds"`
	ThresholdPercent float64 `json:"threshold_percent"`
}

// handleSetConfig applies new detection parameters. Out-of-bounds values are
// rejected here so they never reach the core.
func (s *Server) handleSetConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.agg.SetConfig(req.LookbackSeconds, req.ThresholdPercent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (s *Server) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}
