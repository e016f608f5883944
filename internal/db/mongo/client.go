package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/version"
)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store owns a MongoDB client bound to one database.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewStore connects lazily; use WaitForReady to block until the server answers.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("database is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(version.UserAgent())
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, database: client.Database(cfg.Database)}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until the server responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Collection returns a handle on the named collection.
func (s *Store) Collection(name string) *Collection {
	return &Collection{coll: s.database.Collection(name)}
}

// Counters returns a sequence allocator backed by the named collection.
func (s *Store) Counters(name string) *Counters {
	return &Counters{coll: s.database.Collection(name)}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return db.ErrKeyNotFound
	}
	return &db.Error{Op: op, Err: err}
}
