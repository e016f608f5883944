package restodex

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// RestaurantFetcher loads one record by id. *Client implements it.
type RestaurantFetcher interface {
	GetRestaurant(ctx context.Context, id string) (*Restaurant, error)
}

// DetailState is the phase of the current detail load.
type DetailState int

// Detail states.
const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailFound
	DetailNotFound
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailFound:
		return "found"
	case DetailNotFound:
		return "not_found"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DetailSnapshot is an immutable view of the detail page.
type DetailSnapshot struct {
	State      DetailState
	ID         string
	Restaurant *Restaurant
	View       *DetailView
	Err        error
}

// Detail drives the single-record page. Loading another id discards the
// previous state; the newest load always wins.
type Detail struct {
	fetch RestaurantFetcher

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	snap   DetailSnapshot
}

// NewDetail creates a detail flow over fetch.
func NewDetail(fetch RestaurantFetcher) *Detail {
	return &Detail{fetch: fetch}
}

// Snapshot returns the current state.
func (d *Detail) Snapshot() DetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Load fetches id. A blank id is NotFound without a request.
func (d *Detail) Load(ctx context.Context, id string) DetailSnapshot {
	id = strings.TrimSpace(id)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
	seq := d.seq

	if id == "" {
		d.snap = DetailSnapshot{State: DetailNotFound, Err: ErrNotFound}
		snap := d.snap
		d.mu.Unlock()
		return snap
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.snap = DetailSnapshot{State: DetailLoading, ID: id}
	d.mu.Unlock()

	rec, err := d.fetch.GetRestaurant(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	cancel()
	if seq != d.seq {
		return d.snap
	}
	d.cancel = nil

	switch {
	case errors.Is(err, ErrNotFound):
		d.snap = DetailSnapshot{State: DetailNotFound, ID: id, Err: err}
	case err != nil:
		d.snap = DetailSnapshot{State: DetailFailed, ID: id, Err: err}
	default:
		view := NewDetailView(*rec)
		d.snap = DetailSnapshot{State: DetailFound, ID: id, Restaurant: rec, View: &view}
	}
	return d.snap
}
