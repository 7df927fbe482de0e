// Package main is the entry point for the TrekZone API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/config"
	"github.com/DKS2424/Travel/internal/handler"
	"github.com/DKS2424/Travel/internal/middleware"
	"github.com/DKS2424/Travel/internal/repo"
	"github.com/DKS2424/Travel/internal/service"
	"github.com/DKS2424/Travel/migrations"
)

// purgeInterval is how often expired revoked-token rows are deleted.
const purgeInterval = time.Hour

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Services ---------------------------------------------------------
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	adminPolicy := auth.NewEmailPolicy(cfg.AdminEmail)
	authSvc := service.NewAuthService(
		repo.NewUserRepo(pool),
		repo.NewRevokedTokenRepo(pool),
		tokens,
		cfg.RequireEmailConfirmation,
		adminPolicy,
	)
	trekSvc := service.NewTrekService(repo.NewTrekRepo(pool))

	go purgeRevoked(ctx, authSvc, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srvHandlers := handler.NewServer(trekSvc, authSvc, logger)
	r.Mount("/", srvHandlers.Routes(handler.RouteConfig{
		AnonKey: cfg.AnonKey,
		Policy:  adminPolicy,
	}))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "admin", cfg.AdminEmail)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate runs goose over a short-lived database/sql connection built from
// the pool's connection settings.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer func(db *sql.DB) { _ = db.Close() }(db)

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", applied)
	return nil
}

// purgeRevoked deletes expired revoked-token rows until ctx is done.
func purgeRevoked(ctx context.Context, authSvc *service.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authSvc.PurgeRevoked(ctx)
			if err != nil {
				logger.Error("failed to purge revoked tokens", "error", err)
				continue
			}
			logger.Debug("purged revoked tokens", "count", n)
		}
	}
}
