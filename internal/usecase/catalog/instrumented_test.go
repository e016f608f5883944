package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// fakeBackend adds the write and geo operations to mockRepo.
type fakeBackend struct {
	mockRepo
	inBoxErr error
	saveErr  error
}

func (f *fakeBackend) InBox(_ context.Context, _ geo.Box, _ int) ([]restaurant.Restaurant, bool, error) {
	return nil, false, f.inBoxErr
}

func (f *fakeBackend) EnsureSchema(context.Context) error { return nil }

func (f *fakeBackend) Reset(context.Context) error { return nil }

func (f *fakeBackend) ReserveSeq(_ context.Context, _ int) (int64, error) { return 1, nil }

func (f *fakeBackend) Save(_ context.Context, items []restaurant.Restaurant, _ int64) (int, error) {
	return len(items), f.saveErr
}

func TestInstrumentedBackend_CountsOutcomes(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	inner := &fakeBackend{saveErr: errors.New("disk full")}
	b := NewInstrumentedBackend(inner, "test-outcomes", zap.New(core))
	ctx := context.Background()

	_, _ = b.Count(ctx, "")
	_, _ = b.Get(ctx, "missing") // not found is a successful query
	_, _ = b.Save(ctx, []restaurant.Restaurant{{ID: "1"}}, 1)

	if v := testutil.ToFloat64(metrics.CatalogQueriesTotal.WithLabelValues("count", "test-outcomes", "ok")); v != 1 {
		t.Errorf("count ok = %f, want 1", v)
	}
	if v := testutil.ToFloat64(metrics.CatalogQueriesTotal.WithLabelValues("get", "test-outcomes", "ok")); v != 1 {
		t.Errorf("get ok = %f, want 1", v)
	}
	if v := testutil.ToFloat64(metrics.CatalogQueriesTotal.WithLabelValues("save", "test-outcomes", "error")); v != 1 {
		t.Errorf("save error = %f, want 1", v)
	}

	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if op := logs.All()[0].ContextMap()["operation"]; op != "save" {
		t.Errorf("logged operation = %v", op)
	}
}

func TestInstrumentedBackend_CanceledIsNotAnError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := NewInstrumentedBackend(&fakeBackend{inBoxErr: context.Canceled}, "test-cancel", zap.New(core))

	_, _, err := b.InBox(context.Background(), geo.Box{}, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error must pass through, got %v", err)
	}
	if v := testutil.ToFloat64(metrics.CatalogQueriesTotal.WithLabelValues("in_box", "test-cancel", "canceled")); v != 1 {
		t.Errorf("in_box canceled = %f, want 1", v)
	}
	if logs.Len() != 0 {
		t.Errorf("cancellation must not be logged, got %d entries", logs.Len())
	}
}

func TestInstrumentedBackend_PassesThrough(t *testing.T) {
	want := restaurant.Restaurant{ID: "7", Name: "Truffles"}
	inner := &fakeBackend{mockRepo: mockRepo{
		getFn: func(_ context.Context, id string) (restaurant.Restaurant, error) {
			if id != "7" {
				return restaurant.Restaurant{}, domain.ErrRestaurantNotFound
			}
			return want, nil
		},
	}}
	b := NewInstrumentedBackend(inner, "test-pass", zap.NewNop())

	got, err := b.Get(context.Background(), "7")
	if err != nil || got.Name != want.Name {
		t.Errorf("Get() = %+v, %v", got, err)
	}
	if first, err := b.ReserveSeq(context.Background(), 3); first != 1 || err != nil {
		t.Errorf("ReserveSeq() = %d, %v", first, err)
	}
}

var _ Backend = (*InstrumentedBackend)(nil)
