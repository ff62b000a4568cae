package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the dashboard database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping. Zero means defaultTimeout.
	Timeout time.Duration
}

// Connect dials MongoDB and confirms the primary is reachable before handing
// back the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
