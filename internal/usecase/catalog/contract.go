package catalog

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Repository defines the read contract for the restaurant catalog.
type Repository interface {
	List(ctx context.Context, search string, offset, limit int) ([]restaurant.Restaurant, error)
	Count(ctx context.Context, search string) (int, error)
	Get(ctx context.Context, id string) (restaurant.Restaurant, error)
}

// Backend is the full catalog store implemented by the Redis and MongoDB repositories.
type Backend interface {
	Repository
	InBox(ctx context.Context, box geo.Box, limit int) ([]restaurant.Restaurant, bool, error)
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
	ReserveSeq(ctx context.Context, n int) (int64, error)
	Save(ctx context.Context, items []restaurant.Restaurant, firstSeq int64) (int, error)
}
