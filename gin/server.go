// Package gin serves the folio HTTP API used by the portfolio website.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/folio"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server exposes a folio.Studio and per-visitor conversations over HTTP.
type Server struct {
	studio  folio.Studio
	persona folio.Persona
	config  folio.ServerConfig
	logger  *slog.Logger
	now     func() time.Time

	store  *Store
	engine *gin.Engine
}

// Option configures a [Server].
type Option func(*Server)

// WithConfig sets the server configuration. Default is
// folio.DefaultConfig().Server.
func WithConfig(c folio.ServerConfig) Option {
	return func(s *Server) { s.config = c }
}

// WithPersona sets the persona whose greeting opens every session.
func WithPersona(p folio.Persona) Option {
	return func(s *Server) { s.persona = p }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for session expiry. Exported for testing.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a Server backed by studio.
func NewServer(studio folio.Studio, opts ...Option) *Server {
	defaults := folio.DefaultConfig()
	s := &Server{
		studio:  studio,
		persona: defaults.Persona.Persona(),
		config:  defaults.Server,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.store = NewStore(s.config.SessionTTL, s.now)
	s.engine = s.routes()
	return s
}

// Store returns the session store.
func (s *Server) Store() *Store { return s.store }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery(), cors(s.config.AllowOrigin), bodyLimit(s.config.MaxBodyBytes))

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.POST("/sessions/:id/messages", s.sendMessage)
	api.POST("/images", s.generateImage)
	api.POST("/images/edit", s.editImage)
	api.POST("/speech", s.synthesizeSpeech)
	api.GET("/bio", s.searchBio)
	return r
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully. Idle sessions are evicted while serving.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.store.Run(ctx, s.logger)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}
