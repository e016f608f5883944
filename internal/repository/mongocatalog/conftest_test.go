package mongocatalog

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	mongostore "github.com/kailas-cloud/restodex/internal/db/mongo"
)

// mockCollection implements the consumer interface for tests.
type mockCollection struct {
	aggregateFn     func(ctx context.Context, pipeline mongo.Pipeline, out any) error
	findOneFn       func(ctx context.Context, filter, projection, out any) error
	replaceManyFn   func(ctx context.Context, items []mongostore.ReplaceItem) (int64, error)
	ensureIndexesFn func(ctx context.Context, models []mongo.IndexModel) error
	dropFn          func(ctx context.Context) error
}

func (m *mockCollection) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, pipeline, out)
	}
	return nil
}

func (m *mockCollection) FindOne(ctx context.Context, filter, projection, out any) error {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, filter, projection, out)
	}
	return nil
}

func (m *mockCollection) ReplaceMany(ctx context.Context, items []mongostore.ReplaceItem) (int64, error) {
	if m.replaceManyFn != nil {
		return m.replaceManyFn(ctx, items)
	}
	return int64(len(items)), nil
}

func (m *mockCollection) EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error {
	if m.ensureIndexesFn != nil {
		return m.ensureIndexesFn(ctx, models)
	}
	return nil
}

func (m *mockCollection) Drop(ctx context.Context) error {
	if m.dropFn != nil {
		return m.dropFn(ctx)
	}
	return nil
}

// mockCounters implements the sequence allocator for tests.
type mockCounters struct {
	incrByFn func(ctx context.Context, name string, n int64) (int64, error)
	resetFn  func(ctx context.Context, name string) error
}

func (m *mockCounters) IncrBy(ctx context.Context, name string, n int64) (int64, error) {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, name, n)
	}
	return n, nil
}

func (m *mockCounters) Reset(ctx context.Context, name string) error {
	if m.resetFn != nil {
		return m.resetFn(ctx, name)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockCollection, *mockCounters) {
	t.Helper()
	mc := &mockCollection{}
	cnt := &mockCounters{}
	return New(mc, cnt), mc, cnt
}
