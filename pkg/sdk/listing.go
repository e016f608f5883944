package restodex

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// PageFetcher loads one listing page. *Client implements it.
type PageFetcher interface {
	ListRestaurants(ctx context.Context, q PageQuery) (*Page, error)
}

// ListingState is the phase of the current load.
type ListingState int

// Listing states.
const (
	ListingIdle ListingState = iota
	ListingLoading
	ListingSuccess
	ListingFailed
)

func (s ListingState) String() string {
	switch s {
	case ListingIdle:
		return "idle"
	case ListingLoading:
		return "loading"
	case ListingSuccess:
		return "success"
	case ListingFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ListingSnapshot is an immutable view of the listing.
// Page and Cards are set only in ListingSuccess; Err only in ListingFailed.
type ListingSnapshot struct {
	State   ListingState
	Query   PageQuery
	Page    *Page
	Cards   []CardView
	Err     error
	CanPrev bool
	CanNext bool
	Cached  bool
}

// Listing drives the paginated restaurant list. Each Listing owns its page
// cache; the newest load always wins.
type Listing struct {
	fetch PageFetcher
	cache *cache.Cache // nil when caching is disabled

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	snap   ListingSnapshot
}

// NewListing creates a listing over fetch. ttl <= 0 disables the page cache.
func NewListing(fetch PageFetcher, ttl time.Duration) *Listing {
	l := &Listing{fetch: fetch}
	if ttl > 0 {
		l.cache = cache.New(ttl, 2*ttl)
	}
	return l
}

// Snapshot returns the current state.
func (l *Listing) Snapshot() ListingSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Load fetches the page for q and returns the resulting snapshot. A load
// superseded by a newer one returns the newer state and commits nothing.
func (l *Listing) Load(ctx context.Context, q PageQuery) ListingSnapshot {
	q = q.Normalize()
	key := q.Key()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	seq := l.seq

	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			l.commitLocked(q, v.(*Page), nil, true)
			snap := l.snap
			l.mu.Unlock()
			return snap
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.snap = ListingSnapshot{State: ListingLoading, Query: q}
	l.mu.Unlock()

	page, err := l.fetch.ListRestaurants(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if seq != l.seq {
		return l.snap
	}
	l.cancel = nil
	if err == nil && l.cache != nil {
		l.cache.SetDefault(key, page)
	}
	l.commitLocked(q, page, err, false)
	return l.snap
}

// Next loads the following page.
func (l *Listing) Next(ctx context.Context) (ListingSnapshot, error) {
	snap := l.Snapshot()
	if !snap.CanNext {
		return snap, ErrNavigationBlocked
	}
	q := snap.Query
	q.Page++
	return l.Load(ctx, q), nil
}

// Prev loads the preceding page.
func (l *Listing) Prev(ctx context.Context) (ListingSnapshot, error) {
	snap := l.Snapshot()
	if !snap.CanPrev {
		return snap, ErrNavigationBlocked
	}
	q := snap.Query
	q.Page--
	return l.Load(ctx, q), nil
}

// Refresh drops the cached copy of the current page and fetches it again.
func (l *Listing) Refresh(ctx context.Context) ListingSnapshot {
	q := l.Snapshot().Query
	if l.cache != nil {
		l.cache.Delete(q.Key())
	}
	return l.Load(ctx, q)
}

// Invalidate flushes every cached page.
func (l *Listing) Invalidate() {
	if l.cache != nil {
		l.cache.Flush()
	}
}

func (l *Listing) commitLocked(q PageQuery, page *Page, err error, cached bool) {
	if err != nil {
		l.snap = ListingSnapshot{State: ListingFailed, Query: q, Err: err}
		return
	}

	view := *page
	view.Restaurants = make([]Restaurant, 0, len(page.Restaurants))
	for _, r := range page.Restaurants {
		if matchesName(r, q.Search) {
			view.Restaurants = append(view.Restaurants, r)
		}
	}

	cards := make([]CardView, len(view.Restaurants))
	for i, r := range view.Restaurants {
		cards[i] = NewCardView(r)
	}

	l.snap = ListingSnapshot{
		State:   ListingSuccess,
		Query:   q,
		Page:    &view,
		Cards:   cards,
		CanPrev: q.Page > 1,
		CanNext: q.Page < view.TotalPages,
		Cached:  cached,
	}
}
