// Package backend opens the configured catalog store.
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/config"
	mongostore "github.com/kailas-cloud/restodex/internal/db/mongo"
	redisstore "github.com/kailas-cloud/restodex/internal/db/redis"
	rediscatalog "github.com/kailas-cloud/restodex/internal/repository/catalog"
	"github.com/kailas-cloud/restodex/internal/repository/mongocatalog"
	"github.com/kailas-cloud/restodex/internal/usecase/catalog"
)

var (
	_ catalog.Backend = (*rediscatalog.Repo)(nil)
	_ catalog.Backend = (*mongocatalog.Repo)(nil)
)

// MongoDB collection names.
const (
	RestaurantsCollection = "restaurants"
	CountersCollection    = "counters"
)

// store is the lifecycle surface shared by every driver.
type store interface {
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Handle is an opened, ready catalog store.
type Handle struct {
	Backend catalog.Backend
	store   store
}

// Ping checks the underlying connection.
func (h *Handle) Ping(ctx context.Context) error { return h.store.Ping(ctx) }

// Close releases the connection.
func (h *Handle) Close() { h.store.Close() }

// Open connects to the store named by cfg.Database.Driver, waits until it
// answers and wraps the repository with query metrics.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Handle, error) {
	var (
		h   Handle
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverRedis, config.DriverValkey:
		var s *redisstore.Store
		s, err = redisstore.NewStore(redisstore.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err == nil {
			h.store = s
			h.Backend = rediscatalog.New(s, cfg.Storage.KeyPrefix)
		}
	case config.DriverMongo:
		var s *mongostore.Store
		s, err = mongostore.NewStore(ctx, mongostore.Config{
			URI:      cfg.Database.MongoURI,
			Database: cfg.Database.MongoDatabase,
		})
		if err == nil {
			h.store = s
			h.Backend = mongocatalog.New(
				s.Collection(RestaurantsCollection),
				s.Counters(CountersCollection),
			)
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := h.store.WaitForReady(ctx, timeout); err != nil {
		h.store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	h.Backend = catalog.NewInstrumentedBackend(h.Backend, cfg.Database.Driver, logger)
	return &h, nil
}
