package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/storage"
)

const (
	defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
	downloadTimeout     = 60 * time.Second
)

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, csvPath, zipURL, limit); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, csvPath, zipURL string, limit int) error {
	if cfg.Storage.Backend == config.StorageMemory {
		slog.Warn("seeding the memory backend only lasts until this process exits")
	}

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage %q: %w", cfg.Storage.Backend, err)
	}
	defer func() { _ = closeRepo(ctx) }()

	var src io.ReadCloser
	if csvPath == "" {
		slog.Info("downloading dataset", "url", zipURL)
		src, err = openDataset(ctx, &http.Client{Timeout: downloadTimeout}, zipURL)
		if err != nil {
			return fmt.Errorf("download dataset: %w", err)
		}
	} else {
		src, err = os.Open(csvPath)
		if err != nil {
			return err
		}
	}
	defer src.Close()

	count, err := importMovies(ctx, repo, src, limit)
	if err != nil {
		return fmt.Errorf("after %d rows: %w", count, err)
	}

	slog.Info("import completed", "rows", count, "backend", cfg.Storage.Backend)
	return nil
}
