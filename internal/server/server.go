// Package server exposes the route query API over HTTP. It is a thin
// adapter: all route-finding behaviour lives in the query engine, and all
// data refresh behaviour in the refresh function handed in by main.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/config"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/metrics"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/query"
	"github.com/Jettpacked/UPSVAC-FlightFinder/internal/snapshot"
)

// RefreshFunc re-fetches the upstream data and publishes a new snapshot.
type RefreshFunc func(ctx context.Context) error

// Server wires the gin router to the query engine and snapshot holder.
type Server struct {
	engine  *query.Engine
	holder  *snapshot.Holder
	refresh RefreshFunc
	logger  *slog.Logger
	http    *http.Server
}

// New assembles the router and underlying HTTP server.
func New(cfg config.HTTPConfig, engine *query.Engine, holder *snapshot.Holder, refresh RefreshFunc, logger *slog.Logger) *Server {
	s := &Server{
		engine:  engine,
		holder:  holder,
		refresh: refresh,
		logger:  logger,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	api.GET("/airports", s.handleAirports)
	api.GET("/aircraft", s.handleAircraft)
	api.GET("/routes", s.handleRoutes)
	api.POST("/refresh", s.handleRefresh)

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
