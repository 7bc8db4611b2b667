// Package server собирает эталонный REST сервер: маршруты, middleware и фоновую очистку токенов.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fitsync/internal/config"
	"github.com/iudanet/fitsync/internal/server/handlers"
	"github.com/iudanet/fitsync/internal/server/jwt"
	"github.com/iudanet/fitsync/internal/server/middleware"
	"github.com/iudanet/fitsync/internal/server/storage"
)

// TokenCleanupInterval период удаления просроченных refresh токенов
const TokenCleanupInterval = time.Hour

// Store хранилище сервера
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.RecordStorage
	handlers.Pinger
}

// Server эталонный сервер
type Server struct {
	store   Store
	logger  *slog.Logger
	handler http.Handler
	now     func() time.Time
	cfg     config.Server
}

// New создает сервер. reg используется и для регистрации метрик, и для /metrics.
func New(cfg config.Server, store Store, logger *slog.Logger, reg *prometheus.Registry, version string) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	tokens := jwt.NewService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	health := handlers.NewHealthHandler(logger, store, version)
	auth := handlers.NewAuthHandler(logger, store, store, tokens)
	records := handlers.NewRecordsHandler(logger, store)
	protected := middleware.AuthMiddleware(logger, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", health.Health)

	mux.HandleFunc("POST /api/v1/auth/register", auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)

	mux.Handle("GET /api/v1/{collection}", protected(http.HandlerFunc(records.List)))
	mux.Handle("POST /api/v1/{collection}", protected(http.HandlerFunc(records.Create)))
	mux.Handle("PUT /api/v1/{collection}/{id}", protected(http.HandlerFunc(records.Update)))
	mux.Handle("DELETE /api/v1/{collection}/{id}", protected(http.HandlerFunc(records.Delete)))

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	metrics := middleware.NewMetrics(reg)
	var h http.Handler = mux
	h = middleware.LoggingWithSkip(logger, []string{"/metrics", "/api/v1/health"})(h)
	h = metrics.Middleware(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	s.handler = h

	return s
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run запускает HTTP сервер и очистку токенов до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server started", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.cleanupLoop(gctx, TokenCleanupInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// cleanupLoop периодически удаляет просроченные refresh токены
func (s *Server) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupTokens(ctx)
		}
	}
}

// CleanupTokens удаляет просроченные refresh токены
func (s *Server) CleanupTokens(ctx context.Context) int {
	deleted, err := s.store.DeleteExpiredTokens(ctx, s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete expired tokens", slog.Any("error", err))
		return 0
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "expired tokens deleted", slog.Int("count", deleted))
	}
	return deleted
}
