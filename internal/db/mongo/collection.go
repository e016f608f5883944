package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/restodex/internal/db"
)

// Collection wraps a driver collection and maps failures onto db errors.
type Collection struct {
	coll *mongo.Collection
}

// Aggregate runs pipeline and decodes every result into out, which must be a pointer to a slice.
func (c *Collection) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return wrap(db.OpAggregate, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return wrap(db.OpAggregate, err)
	}
	return nil
}

// FindOne decodes the first document matching filter into out.
// A miss is reported as db.ErrKeyNotFound.
func (c *Collection) FindOne(ctx context.Context, filter, projection, out any) error {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	return wrap(db.OpFindOne, c.coll.FindOne(ctx, filter, opts).Decode(out))
}

// ReplaceItem is one upsert keyed by Filter.
type ReplaceItem struct {
	Filter   any
	Document any
}

// ReplaceMany upserts every item in one unordered bulk write and returns
// the number of documents inserted or matched.
func (c *Collection) ReplaceMany(ctx context.Context, items []ReplaceItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(items))
	for _, it := range items {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(it.Filter).
			SetReplacement(it.Document).
			SetUpsert(true))
	}

	res, err := c.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, wrap(db.OpBulkWrite, err)
	}
	return res.UpsertedCount + res.MatchedCount, nil
}

// EnsureIndexes creates the given indexes; existing identical indexes are a no-op server-side.
func (c *Collection) EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return wrap(db.OpCreateIndexes, err)
	}
	return nil
}

// Drop removes the collection with its indexes.
func (c *Collection) Drop(ctx context.Context) error {
	return wrap(db.OpDrop, c.coll.Drop(ctx))
}

// Counters allocates monotonically increasing sequences, one document per name.
type Counters struct {
	coll *mongo.Collection
}

// IncrBy adds n to the named counter and returns the new value.
func (c *Counters) IncrBy(ctx context.Context, name string, n int64) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := c.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "value", Value: n}}}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, wrap(db.OpFindAndInc, err)
	}
	return doc.Value, nil
}

// Reset removes the named counter.
func (c *Counters) Reset(ctx context.Context, name string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: name}}); err != nil {
		return wrap(db.OpDelete, err)
	}
	return nil
}
