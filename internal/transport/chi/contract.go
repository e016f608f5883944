package chi

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/nearby"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
)

// CatalogService serves paginated listing and detail lookups.
type CatalogService interface {
	List(ctx context.Context, q listing.Query) (listing.Page, error)
	Get(ctx context.Context, id string) (restaurant.Restaurant, error)
}

// NearbyService serves proximity searches.
type NearbyService interface {
	Search(ctx context.Context, q nearby.Query) ([]restaurant.Restaurant, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
