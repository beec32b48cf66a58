// Package api serves the ledger snapshot and run history over HTTP for the
// dashboard that consumes the JSON snapshot.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quietbooks/ledgersync/internal/application/reconcile"
	"github.com/quietbooks/ledgersync/internal/infrastructure/config"
	"github.com/quietbooks/ledgersync/internal/infrastructure/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg      config.ServerConfig
	router   *gin.Engine
	store    *storage.Store
	pipeline *reconcile.Pipeline
	snapshot string
	logger   *slog.Logger

	// The pipeline is single-threaded; concurrent reconcile requests are
	// serialized, not parallelized.
	runMu sync.Mutex
}

// NewServer creates the API server. store may be nil (run endpoints return
// 503); pipeline may be nil (the reconcile trigger returns 503).
func NewServer(cfg config.ServerConfig, store *storage.Store, pipeline *reconcile.Pipeline, snapshotPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		pipeline: pipeline,
		snapshot: snapshotPath,
		logger:   logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		// cors.New rejects an empty origin list.
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", s.getHealth)
	api := router.Group("/api")
	{
		api.GET("/ledger", s.getLedger)
		api.GET("/stats", s.getStats)
		api.GET("/runs", s.getRuns)
		api.POST("/reconcile", s.postReconcile)
	}

	s.router = router
	return s
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("Starting API server", "addr", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
