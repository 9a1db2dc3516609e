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

// Config selects the database holding document metadata.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetServerSelectionTimeout(c.timeout()).
		SetReadPreference(readpref.Primary())
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	return opts
}

// Open connects to MongoDB, checks the primary answers and makes sure the
// document indexes exist. Close releases the connection.
func Open(ctx context.Context, cfg Config) (*DocumentRepository, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo: database name is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	repo := NewDocumentRepository(client.Database(cfg.Database))
	repo.client = client
	if err := repo.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}
	return repo, nil
}

// Ping reports whether the primary still answers.
func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, readpref.Primary())
}

// Close disconnects a repository returned by Open.
func (r *DocumentRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
