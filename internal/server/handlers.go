package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/metrics"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/query"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/routegraph"
)

func (s *Server) handleHealth(c *gin.Context) {
	snap, ok := s.holder.Load()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "loading", "snapshot": nil})
		return
	}
	airports, aircraft, legs := snap.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"snapshot": gin.H{
			"airports":  airports,
			"aircraft":  aircraft,
			"legs":      legs,
			"loaded_at": snap.LoadedAt(),
		},
	})
}

func (s *Server) handleAirports(c *gin.Context) {
	snap, ok := s.holder.Load()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route data not loaded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": snap.Airports()})
}

func (s *Server) handleAircraft(c *gin.Context) {
	snap, ok := s.holder.Load()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route data not loaded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"aircraft": snap.Aircraft()})
}

func (s *Server) handleRoutes(c *gin.Context) {
	aircraft := c.Query("aircraft")
	from := c.Query("from")
	to := c.Query("to")
	if aircraft == "" || from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aircraft, from and to query parameters are required"})
		return
	}

	start := time.Now()
	result, err := s.engine.FindRoutes(aircraft, from, to)
	metrics.RouteQueryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var unknownAirport *query.UnknownAirportError
		var unknownAircraft *routegraph.UnknownAircraftError
		switch {
		case errors.Is(err, query.ErrNoSnapshot):
			metrics.RouteQueries.WithLabelValues("no_snapshot").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.As(err, &unknownAirport):
			metrics.RouteQueries.WithLabelValues("unknown_airport").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &unknownAircraft):
			metrics.RouteQueries.WithLabelValues("unknown_aircraft").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			metrics.RouteQueries.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if result.Available {
		metrics.RouteQueries.WithLabelValues("found").Inc()
	} else {
		metrics.RouteQueries.WithLabelValues("no_route").Inc()
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.refresh(c.Request.Context()); err != nil {
		s.logger.Error("manual refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	snap, _ := s.holder.Load()
	airports, aircraft, legs := snap.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status":   "refreshed",
		"airports": airports,
		"aircraft": aircraft,
		"legs":     legs,
	})
}
