package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reports how many restaurants the catalog holds.
type CatalogCounter interface {
	Count(ctx context.Context, search string) (int, error)
}
