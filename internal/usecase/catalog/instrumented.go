package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// InstrumentedBackend wraps a Backend with query metrics and failure logging.
type InstrumentedBackend struct {
	inner   Backend
	backend string
	logger  *zap.Logger
}

// NewInstrumentedBackend wraps inner; backend labels the metrics ("redis", "mongo").
func NewInstrumentedBackend(inner Backend, backend string, logger *zap.Logger) *InstrumentedBackend {
	return &InstrumentedBackend{inner: inner, backend: backend, logger: logger}
}

// List delegates and records the "list" operation.
func (b *InstrumentedBackend) List(
	ctx context.Context, search string, offset, limit int,
) ([]restaurant.Restaurant, error) {
	start := time.Now()
	items, err := b.inner.List(ctx, search, offset, limit)
	b.observe("list", start, err)
	return items, err
}

// Count delegates and records the "count" operation.
func (b *InstrumentedBackend) Count(ctx context.Context, search string) (int, error) {
	start := time.Now()
	n, err := b.inner.Count(ctx, search)
	b.observe("count", start, err)
	return n, err
}

// Get delegates and records the "get" operation. Not found counts as success.
func (b *InstrumentedBackend) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	start := time.Now()
	r, err := b.inner.Get(ctx, id)
	b.observe("get", start, err)
	return r, err
}

// InBox delegates and records the "in_box" operation.
func (b *InstrumentedBackend) InBox(
	ctx context.Context, box geo.Box, limit int,
) ([]restaurant.Restaurant, bool, error) {
	start := time.Now()
	items, truncated, err := b.inner.InBox(ctx, box, limit)
	b.observe("in_box", start, err)
	return items, truncated, err
}

// EnsureSchema delegates and records the "ensure_schema" operation.
func (b *InstrumentedBackend) EnsureSchema(ctx context.Context) error {
	start := time.Now()
	err := b.inner.EnsureSchema(ctx)
	b.observe("ensure_schema", start, err)
	return err
}

// Reset delegates and records the "reset" operation.
func (b *InstrumentedBackend) Reset(ctx context.Context) error {
	start := time.Now()
	err := b.inner.Reset(ctx)
	b.observe("reset", start, err)
	return err
}

// ReserveSeq delegates and records the "reserve_seq" operation.
func (b *InstrumentedBackend) ReserveSeq(ctx context.Context, n int) (int64, error) {
	start := time.Now()
	first, err := b.inner.ReserveSeq(ctx, n)
	b.observe("reserve_seq", start, err)
	return first, err
}

// Save delegates and records the "save" operation.
func (b *InstrumentedBackend) Save(
	ctx context.Context, items []restaurant.Restaurant, firstSeq int64,
) (int, error) {
	start := time.Now()
	n, err := b.inner.Save(ctx, items, firstSeq)
	b.observe("save", start, err)
	return n, err
}

func (b *InstrumentedBackend) observe(op string, start time.Time, err error) {
	duration := time.Since(start)
	metrics.CatalogQueryDuration.WithLabelValues(op, b.backend).Observe(duration.Seconds())

	status := "ok"
	switch {
	case err == nil, errors.Is(err, domain.ErrRestaurantNotFound):
	case errors.Is(err, context.Canceled):
		status = "canceled"
	default:
		status = "error"
		b.logger.Warn("Catalog query failed",
			zap.String("operation", op),
			zap.String("backend", b.backend),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
	metrics.CatalogQueriesTotal.WithLabelValues(op, b.backend, status).Inc()
}
