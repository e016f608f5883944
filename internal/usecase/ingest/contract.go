package ingest

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Writer is the write side of the catalog store.
type Writer interface {
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
	ReserveSeq(ctx context.Context, n int) (int64, error)
	Save(ctx context.Context, items []restaurant.Restaurant, firstSeq int64) (int, error)
}
