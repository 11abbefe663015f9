// Package server exposes the tutoring service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/platform/logger"
)

const healthPath = "/api/health"

// Deps are the services the routes call into.
type Deps struct {
	Tutor Tutor
	Quiz  QuizGenerator
	Log   *logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	if !cfg.TrustProxy {
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	if cfg.Otel.Enabled {
		r.Use(otelgin.Middleware(cfg.Otel.ServiceName))
	}
	r.Use(requestID())
	r.Use(requestLogger(log))
	r.Use(securityHeaders())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(bodyLimit(cfg.BodyLimit))
	r.Use(rateLimit(cfg.RateLimit, cfg.RateWindow))

	h := &handlers{tutor: deps.Tutor, quiz: deps.Quiz, now: now}

	api := r.Group("/api")
	{
		api.POST("/generate-content", h.GenerateContent)
		api.POST("/dialogue", h.Dialogue)
		api.GET("/session/:sessionId", h.Session)
		api.POST("/quiz", h.Quiz)
		api.GET("/health", h.Health)
	}

	return r
}

// Server runs the router until its context is cancelled.
type Server struct {
	http            *http.Server
	log             *logger.Logger
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:             log,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		timeout := s.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.log.Info("server shutting down")
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
