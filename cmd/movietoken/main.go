package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/pkg/jwt"
)

func main() {
	var (
		subject string
		ttl     time.Duration
	)

	flag.StringVar(&subject, "sub", "", "Name of the operator the token is issued to")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		slog.Error("AUTH_JWT_SECRET is not set, write routes are public")
		os.Exit(1)
	}

	token, err := jwt.NewProvider(cfg.Auth.JWTSecret, ttl).Issue(subject)
	if err != nil {
		slog.Error("cannot issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
