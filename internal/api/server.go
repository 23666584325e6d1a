// internal/api/server.go
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/search"
)

// Check reports whether one backend is reachable.
type Check func(ctx context.Context) error

// Invalidator drops cached inventory.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type namedCheck struct {
	name  string
	check Check
}

// Server is the HTTP boundary of the ranking service.
type Server struct {
	engine      *gin.Engine
	search      *search.Service
	checks      []namedCheck
	invalidator Invalidator
	version     string
	logger      logger.Logger
}

type Option func(*Server)

// WithCheck adds a backend to /ready.
func WithCheck(name string, check Check) Option {
	return func(s *Server) {
		s.checks = append(s.checks, namedCheck{name: name, check: check})
	}
}

// WithInvalidator enables POST /inventory/refresh.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Server) { s.invalidator = inv }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

func NewServer(svc *search.Service, cfg config.ServerConfig, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		search: svc,
		logger: log.WithFields(map[string]interface{}{"component": "http"}),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(TraceID())
	engine.Use(RequestLogger(s.logger))
	engine.Use(CORS(cfg.CORSOrigins))
	s.engine = engine

	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/ready", s.handleReady)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine.POST("/getHolidayOptions", s.handleHolidayOptions)
	if s.invalidator != nil {
		s.engine.POST("/inventory/refresh", s.handleRefresh)
	}
}

// Handler returns the router for use in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
