// Package server exposes an engine over a small JSON API for browser hosts.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/plus3/wordfall/engine"
	"golang.org/x/time/rate"
)

const (
	RouteHealth    = "/healthz"
	RouteLists     = "/api/lists"
	RouteState     = "/api/state"
	RouteSelect    = "/api/select"
	RouteCategory  = "/api/category"
	RouteMode      = "/api/mode"
	RouteStart     = "/api/start"
	RoutePause     = "/api/pause"
	RouteReset     = "/api/reset"
	RoutePlayfield = "/api/playfield"
	RouteHit       = "/api/hit"
)

// Server serves one engine.
type Server struct {
	engine    *engine.Engine
	cfg       Config
	logger    *log.Logger
	started   time.Time
	limiters  map[string]*rate.Limiter
	limiterMu sync.Mutex
}

// New creates a server for e. A nil logger logs to stderr.
func New(e *engine.Engine, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "wordfall-server: ", log.LstdFlags)
	}
	return &Server{
		engine:   e,
		cfg:      cfg,
		logger:   logger,
		started:  time.Now(),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Router builds the gin handler with every route and middleware.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies(s.cfg.TrustedProxies); err != nil {
		s.logger.Printf("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteHealth, s.healthHandler)

	api := router.Group("/", noStore())
	api.GET(RouteLists, s.listsHandler)
	api.GET(RouteState, s.stateHandler)

	commands := api.Group("/", s.rateLimitMiddleware())
	commands.POST(RouteSelect, s.selectHandler)
	commands.POST(RouteCategory, s.categoryHandler)
	commands.POST(RouteMode, s.modeHandler)
	commands.POST(RouteStart, s.command(s.engine.Start))
	commands.POST(RoutePause, s.command(s.engine.Pause))
	commands.POST(RouteReset, s.command(s.engine.Reset))
	commands.POST(RoutePlayfield, s.playfieldHandler)
	commands.POST(RouteHit, s.hitHandler)

	return router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.logger.Printf("Shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	s.logger.Printf("Server starting on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-idleConnsClosed
	s.logger.Printf("Server shutdown complete")
	return nil
}
