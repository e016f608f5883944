package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// store is the consumer interface for the catalog (ISP).
//
//nolint:interfacebloat // catalog repo needs JSON, counter, index and search operations
type store interface {
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters []db.Condition) (int, error)
}

// Repo implements the catalog repository over Redis JSON + FT.SEARCH.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. keyPrefix namespaces every key, e.g. "restodex:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// List returns one page of restaurants whose name contains search, ordered by seq.
func (r *Repo) List(
	ctx context.Context, search string, offset, limit int,
) ([]restaurant.Restaurant, error) {
	res, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:        r.indexName(),
		Filters:      nameFilter(search),
		Offset:       offset,
		Limit:        limit,
		SortBy:       fieldSeq,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	return decodeEntries(res.Entries)
}

// Count returns the number of restaurants whose name contains search.
func (r *Repo) Count(ctx context.Context, search string) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), nameFilter(search))
	if err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return n, nil
}

// Get returns one restaurant by id.
func (r *Repo) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return restaurant.Restaurant{}, domain.ErrRestaurantNotFound
		}
		return restaurant.Restaurant{}, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	rest, err := unmarshalRestaurant([]byte(unwrapRoot(string(raw))))
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("decode restaurant %s: %w", id, err)
	}
	return rest, nil
}

// InBox returns up to limit restaurants positioned inside box, ordered by seq.
// truncated reports that more candidates matched than were returned.
func (r *Repo) InBox(
	ctx context.Context, box geo.Box, limit int,
) (items []restaurant.Restaurant, truncated bool, err error) {
	res, err := r.store.SearchList(ctx, &db.ListQuery{
		Index: r.indexName(),
		Filters: []db.Condition{
			db.Between(fieldLatitude, box.MinLat, box.MaxLat),
			db.Between(fieldLongitude, box.MinLon, box.MaxLon),
		},
		Limit:        limit,
		SortBy:       fieldSeq,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, false, fmt.Errorf("search restaurants in box: %w", err)
	}
	items, err = decodeEntries(res.Entries)
	if err != nil {
		return nil, false, err
	}
	return items, res.Total > len(items), nil
}

// EnsureSchema creates the search index when it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, buildIndex(r.indexName(), r.keyPrefix())); err != nil &&
		!errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Reset drops the index together with every indexed document and rewinds the sequence.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName(), true); err != nil &&
		!errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}
	if err := r.store.Del(ctx, r.seqKey()); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}

// ReserveSeq reserves n consecutive sequence numbers and returns the first one.
func (r *Repo) ReserveSeq(ctx context.Context, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve seq: n must be positive, got %d", n)
	}
	end, err := r.store.IncrBy(ctx, r.seqKey(), int64(n))
	if err != nil {
		return 0, fmt.Errorf("reserve seq: %w", err)
	}
	return end - int64(n) + 1, nil
}

// Save writes restaurants in one pipeline; items[i] gets sequence firstSeq+i.
func (r *Repo) Save(ctx context.Context, items []restaurant.Restaurant, firstSeq int64) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	sets := make([]db.JSONSetItem, 0, len(items))
	for i := range items {
		data, err := marshalDocument(&items[i], firstSeq+int64(i))
		if err != nil {
			return 0, fmt.Errorf("encode restaurant %s: %w", items[i].ID, err)
		}
		sets = append(sets, db.JSONSetItem{Key: r.key(items[i].ID), Path: "$", Data: data})
	}

	if err := r.store.JSONSetMulti(ctx, sets); err != nil {
		return 0, fmt.Errorf("save restaurants: %w", err)
	}
	return len(sets), nil
}

// Key layout: {prefix}restaurant:{id}, {prefix}restaurant:idx, {prefix}restaurant:seq

func (r *Repo) keyPrefix() string { return r.prefix + "restaurant:" }

func (r *Repo) key(id string) string { return r.keyPrefix() + id }

func (r *Repo) indexName() string { return r.prefix + "restaurant:idx" }

func (r *Repo) seqKey() string { return r.prefix + "restaurant:seq" }

func nameFilter(search string) []db.Condition {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return nil
	}
	// Infix TAG queries need at least two characters.
	if utf8.RuneCountInString(search) == 1 {
		return []db.Condition{db.TagEquals(fieldNameChars, search)}
	}
	return []db.Condition{db.Contains(fieldNameLC, search)}
}
