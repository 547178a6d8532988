// Package storage turns configuration into a concrete movie.Repository.
package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ErolGelbul/imbd-tracker/dynamodb"
	"github.com/ErolGelbul/imbd-tracker/memory"
	"github.com/ErolGelbul/imbd-tracker/mongodb"
	"github.com/ErolGelbul/imbd-tracker/movie"
	"github.com/ErolGelbul/imbd-tracker/pkg/config"
	"github.com/ErolGelbul/imbd-tracker/postgres"
)

// CloseFunc releases the connections held by a repository.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open builds the repository selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (movie.Repository, CloseFunc, error) {
	switch cfg.Storage.Backend {
	case "", config.StorageMemory:
		return memory.NewMovieRepository(), noopClose, nil
	case config.StorageMongoDB:
		return openMongoDB(ctx, cfg)
	case config.StoragePostgres:
		return openPostgres(cfg)
	case config.StorageDynamoDB:
		return openDynamoDB(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage.Backend)
	}
}

func openMongoDB(ctx context.Context, cfg *config.Config) (movie.Repository, CloseFunc, error) {
	client, err := mongodb.NewClient(ctx, mongodb.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}

	repo := mongodb.NewMovieRepository(mongodb.Database(client, cfg.Mongo.Database))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return repo, client.Disconnect, nil
}

func openPostgres(cfg *config.Config) (movie.Repository, CloseFunc, error) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: open connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: get db instance: %w", err)
	}
	return postgres.NewMovieRepository(db), func(context.Context) error {
		return sqlDB.Close()
	}, nil
}

func openDynamoDB(ctx context.Context, cfg *config.Config) (movie.Repository, CloseFunc, error) {
	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return nil, nil, err
	}

	table := cfg.DynamoDB.MoviesTable
	if table == "" {
		table = dynamodb.DefaultMoviesTable
	}
	repo := dynamodb.NewMovieRepository(client, table)
	if err := repo.EnsureTable(ctx); err != nil {
		return nil, nil, err
	}
	return repo, noopClose, nil
}
