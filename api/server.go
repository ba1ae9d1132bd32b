package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/database"
	"github.com/killallgit/marathon-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	db                 *database.DB
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server. Server settings from cfg override the
// defaults when set.
func NewServer(address string, cfg *config.Config) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	httpServer := &http.Server{
		Addr:        address,
		Handler:     engine,
		ReadTimeout: 30 * time.Second,
		// The draft event stream stays open, so writes are not bounded
		WriteTimeout:   0,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}
	if cfg != nil {
		if cfg.Server.ReadTimeout > 0 {
			httpServer.ReadTimeout = cfg.Server.ReadTimeout
		}
		if cfg.Server.MaxHeaderBytes > 0 {
			httpServer.MaxHeaderBytes = cfg.Server.MaxHeaderBytes
		}
	}

	return &Server{
		engine:       engine,
		httpServer:   httpServer,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: &types.Dependencies{Config: cfg},
	}
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *database.DB) {
	s.db = db
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	s.dependencies.DB = db
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
	if deps != nil && deps.DB != nil {
		s.db = deps.DB
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return s.setupRoutes()
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Logger())

	var cfg *config.Config
	if s.dependencies != nil {
		cfg = s.dependencies.Config
	}

	if cfg == nil {
		s.engine.Use(CORS(nil))
		s.engine.Use(RequestSizeLimit())
		return
	}

	if cfg.Security.EnableCORS {
		s.engine.Use(CORS(cfg.Security.CORSOrigins))
	}
	s.engine.Use(RequestSizeLimitWithSize(cfg.Security.MaxRequestBytes))
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server. Open event streams end when
// their request context is cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.cleanupStop)
	})
	return s.httpServer.Shutdown(ctx)
}
