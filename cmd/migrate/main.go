package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/postgres"

	_ "github.com/lib/pq"
)

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the sql migrations")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot connecting to db", "error", err)
		os.Exit(1)
	}

	total, err := postgres.Migrate(db, dir)
	if err != nil {
		logger.Error("cannot execute migration", "error", err)
		os.Exit(1)
	}

	logger.Info("applied migrations", "total", total)
}
