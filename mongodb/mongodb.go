package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	DefaultURI      = "mongodb://localhost:27017"
	DefaultDatabase = "movie_track_db"

	connectTimeout = 10 * time.Second
)

type Options struct {
	URI      string
	Database string
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, opts Options) (*mongo.Client, error) {
	uri := strings.TrimSpace(opts.URI)
	if uri == "" {
		uri = DefaultURI
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return client, nil
}

// Database returns the configured database, falling back to DefaultDatabase.
func Database(client *mongo.Client, name string) *mongo.Database {
	if strings.TrimSpace(name) == "" {
		name = DefaultDatabase
	}
	return client.Database(name)
}

func validateCollection(coll *mongo.Collection) error {
	if coll == nil {
		return errors.New("mongodb: collection is required")
	}
	return nil
}
