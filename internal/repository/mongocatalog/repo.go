package mongocatalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/restodex/internal/db"
	mongostore "github.com/kailas-cloud/restodex/internal/db/mongo"
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// SeqCounter names the counters document holding the catalog sequence.
const SeqCounter = "restaurant_seq"

// collection is the consumer interface for restaurant documents (ISP).
type collection interface {
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error
	FindOne(ctx context.Context, filter, projection, out any) error
	ReplaceMany(ctx context.Context, items []mongostore.ReplaceItem) (int64, error)
	EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error
	Drop(ctx context.Context) error
}

// counters allocates sequence numbers.
type counters interface {
	IncrBy(ctx context.Context, name string, n int64) (int64, error)
	Reset(ctx context.Context, name string) error
}

// Repo implements the catalog repository over a MongoDB collection.
type Repo struct {
	coll collection
	seq  counters
}

// New creates a MongoDB catalog repository.
func New(c collection, seq counters) *Repo {
	return &Repo{coll: c, seq: seq}
}

// document is the stored form: the flat record plus its sequence.
type document struct {
	restaurant.Restaurant `bson:",inline"`
	Seq                   int64 `bson:"seq"`
}

var hideInternal = bson.D{{Key: "_id", Value: 0}, {Key: "seq", Value: 0}}

// List returns one page of restaurants whose name contains search, ordered by seq.
func (r *Repo) List(
	ctx context.Context, search string, offset, limit int,
) ([]restaurant.Restaurant, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: nameMatch(search)}},
		{{Key: "$sort", Value: bson.D{{Key: "seq", Value: 1}}}},
		{{Key: "$skip", Value: int64(offset)}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: hideInternal}},
	}

	var out []restaurant.Restaurant
	if err := r.coll.Aggregate(ctx, pipeline, &out); err != nil {
		return nil, fmt.Errorf("aggregate restaurants: %w", err)
	}
	if out == nil {
		out = []restaurant.Restaurant{}
	}
	return out, nil
}

// Count returns the number of restaurants whose name contains search.
func (r *Repo) Count(ctx context.Context, search string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: nameMatch(search)}},
		{{Key: "$count", Value: "total"}},
	}

	var out []struct {
		Total int `bson:"total"`
	}
	if err := r.coll.Aggregate(ctx, pipeline, &out); err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// Get returns one restaurant by id.
func (r *Repo) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}, hideInternal, &out)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return restaurant.Restaurant{}, domain.ErrRestaurantNotFound
		}
		return restaurant.Restaurant{}, fmt.Errorf("find restaurant %s: %w", id, err)
	}
	return out, nil
}

// InBox returns up to limit restaurants positioned inside box, ordered by seq.
func (r *Repo) InBox(
	ctx context.Context, box geo.Box, limit int,
) (items []restaurant.Restaurant, truncated bool, err error) {
	match := bson.D{
		{Key: "location.latitude", Value: bson.D{{Key: "$gte", Value: box.MinLat}, {Key: "$lte", Value: box.MaxLat}}},
		{Key: "location.longitude", Value: bson.D{{Key: "$gte", Value: box.MinLon}, {Key: "$lte", Value: box.MaxLon}}},
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "seq", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit) + 1}},
		{{Key: "$project", Value: hideInternal}},
	}

	if err := r.coll.Aggregate(ctx, pipeline, &items); err != nil {
		return nil, false, fmt.Errorf("aggregate restaurants in box: %w", err)
	}
	if len(items) > limit {
		return items[:limit], true, nil
	}
	if items == nil {
		items = []restaurant.Restaurant{}
	}
	return items, false, nil
}

// EnsureSchema creates the lookup, ordering and coordinate indexes.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("id_unique"),
		},
		{
			Keys:    bson.D{{Key: "seq", Value: 1}},
			Options: options.Index().SetName("seq"),
		},
		{
			Keys:    bson.D{{Key: "location.latitude", Value: 1}, {Key: "location.longitude", Value: 1}},
			Options: options.Index().SetName("location_lat_lon"),
		},
	}
	if err := r.coll.EnsureIndexes(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// Reset drops every restaurant and rewinds the sequence.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop restaurants: %w", err)
	}
	if err := r.seq.Reset(ctx, SeqCounter); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}

// ReserveSeq reserves n consecutive sequence numbers and returns the first one.
func (r *Repo) ReserveSeq(ctx context.Context, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve seq: n must be positive, got %d", n)
	}
	end, err := r.seq.IncrBy(ctx, SeqCounter, int64(n))
	if err != nil {
		return 0, fmt.Errorf("reserve seq: %w", err)
	}
	return end - int64(n) + 1, nil
}

// Save upserts restaurants by id; items[i] gets sequence firstSeq+i.
func (r *Repo) Save(ctx context.Context, items []restaurant.Restaurant, firstSeq int64) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	writes := make([]mongostore.ReplaceItem, 0, len(items))
	for i := range items {
		writes = append(writes, mongostore.ReplaceItem{
			Filter:   bson.D{{Key: "id", Value: items[i].ID}},
			Document: document{Restaurant: items[i], Seq: firstSeq + int64(i)},
		})
	}

	if _, err := r.coll.ReplaceMany(ctx, writes); err != nil {
		return 0, fmt.Errorf("save restaurants: %w", err)
	}
	return len(writes), nil
}

// nameMatch builds a case-insensitive substring match on name; blank matches all.
func nameMatch(search string) bson.D {
	search = strings.TrimSpace(search)
	if search == "" {
		return bson.D{}
	}
	return bson.D{{Key: "name", Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(search)},
		{Key: "$options", Value: "i"},
	}}}
}
