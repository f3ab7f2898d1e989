// Package server собирает HTTP сервер приема check-in: маршруты, middleware и жизненный цикл.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/geocheckin/internal/server/cache"
	"github.com/iudanet/geocheckin/internal/server/handlers"
	"github.com/iudanet/geocheckin/internal/server/metrics"
	"github.com/iudanet/geocheckin/internal/server/middleware"
	"github.com/iudanet/geocheckin/internal/server/storage"
)

// ShutdownTimeout время на завершение активных запросов
const ShutdownTimeout = 15 * time.Second

// Deps зависимости сервера
type Deps struct {
	Logger  *slog.Logger
	Store   storage.CheckinStorage
	Photos  storage.PhotoStore
	Cache   cache.MarkerCache
	Metrics *metrics.Metrics
}

// Options настройки HTTP слоя
type Options struct {
	JWT            handlers.JWTConfig
	Addr           string
	MaxUploadBytes int64
	// SubmitRateLimit отправок в минуту на курьера, 0 - без ограничения
	SubmitRateLimit int
}

// Server HTTP сервер check-in
type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
}

// New собирает маршруты и middleware
func New(opts Options, deps Deps) *Server {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	s := &Server{logger: deps.Logger}

	checkins := handlers.NewCheckinHandler(deps.Logger, deps.Store, deps.Photos, deps.Cache, deps.Metrics, opts.MaxUploadBytes)
	health := handlers.NewHealthHandler(deps.Logger, deps.Store)
	auth := handlers.NewAuthHandler(deps.Logger, opts.JWT)

	authenticated := middleware.AuthMiddleware(deps.Logger, opts.JWT)
	protect := func(h http.HandlerFunc) http.Handler {
		return authenticated(h)
	}

	submit := http.Handler(http.HandlerFunc(checkins.Submit))
	if opts.SubmitRateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(opts.SubmitRateLimit, time.Minute, deps.Logger)
		submit = s.limiter.Middleware(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", health.Health)
	mux.Handle("GET /metrics", deps.Metrics.Handler())
	mux.Handle("GET /api/v1/auth/whoami", protect(auth.WhoAmI))
	mux.Handle("POST /api/v1/checkins", authenticated(submit))
	mux.Handle("GET /api/v1/checkins", protect(checkins.History))
	mux.Handle("GET /api/v1/checkins/markers", protect(checkins.Markers))
	mux.Handle("GET /api/v1/checkins/{id}", protect(checkins.Detail))
	mux.Handle("GET /api/v1/photos/{id}", protect(checkins.Photo))

	// порядок: recovery снаружи, чтобы паника в логгере или метриках тоже ловилась
	var handler http.Handler = mux
	handler = deps.Metrics.Middleware(handler)
	handler = middleware.LoggingWithSkip(deps.Logger, []string{"/api/v1/health", "/metrics"})(handler)
	handler = middleware.RecoveryMiddleware(deps.Logger)(handler)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	return s
}

// Handler возвращает корневой handler (для тестов)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run слушает адрес до отмены ctx, затем корректно завершает активные запросы
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	if s.limiter != nil {
		g.Go(func() error {
			s.limiter.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
