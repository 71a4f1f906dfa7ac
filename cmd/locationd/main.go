// Command locationd runs the location backend: an HTTP API that stores named
// points of interest per owner, gates saves behind a propose/confirm step, and
// announces confirmed locations through an optional webhook.
//
// Boot order: env → config → logging → tracing → database → services → HTTP
// server. Shutdown is graceful on SIGINT/SIGTERM: the listener drains, the
// expiry sweeper stops, tracing flushes, and the database closes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/outpostlabs/go-location-backend/internal/config"
	httpapi "github.com/outpostlabs/go-location-backend/internal/http"
	"github.com/outpostlabs/go-location-backend/internal/notify"
	"github.com/outpostlabs/go-location-backend/internal/observability"
	"github.com/outpostlabs/go-location-backend/internal/repo"
	"github.com/outpostlabs/go-location-backend/internal/sysutil"
)

// version is set via -ldflags "-X main.version=..." at build time.
var version = "dev"

// @title           Location Backend API
// @version         0.1
// @description     Point-of-interest store with a two-step confirmation workflow and webhook notifications.
// @BasePath        /api/v1
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Msg("starting locationd")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Error().Err(err).Msg("close database failed")
		}
	}()
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// Notification dispatcher
	dispatcher := notify.NewWebhook(cfg.Webhook)
	if dispatcher.Enabled() {
		log.Info().Msg("webhook notifications enabled")
	} else {
		log.Warn().Msg("webhook notifications disabled: no destination configured")
	}

	// HTTP transport
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	confirmSvc := httpapi.RegisterRoutes(engine, db, dispatcher, cfg)

	// Background expiry sweep for unconfirmed candidates.
	go confirmSvc.RunSweeper(ctx, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
	}

	// Drain in-flight requests, then flush traces.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("locationd stopped")
}
