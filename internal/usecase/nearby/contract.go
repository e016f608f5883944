package nearby

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Locator returns restaurants positioned inside a bounding box.
type Locator interface {
	InBox(ctx context.Context, box geo.Box, limit int) ([]restaurant.Restaurant, bool, error)
}
