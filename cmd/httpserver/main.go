package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErolGelbul/imbd-tracker/httpserver"
	"github.com/ErolGelbul/imbd-tracker/movie"
	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/pkg/logger"
	"github.com/ErolGelbul/imbd-tracker/pkg/sentry"
	"github.com/ErolGelbul/imbd-tracker/storage"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Tracker API
// @version 1.0
// @description Keeps track of movies to watch.
// @BasePath /
func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		sentry.WithTags(map[string]string{"storage": cfg.Storage.Backend}).Fatal(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(context.Background()); err != nil {
			slog.Error("cannot close storage", "error", err)
		}
	}()
	slog.Info("storage opened", "backend", cfg.Storage.Backend)
	if cfg.MetricsEnabled {
		slog.Info("metrics enabled", "path", "/metrics")
	}

	server := httpserver.Default(cfg)
	server.Logger = zl
	server.MovieService = movie.NewUsecase(repo)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started!", "addr", server.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
