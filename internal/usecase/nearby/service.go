package nearby

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain/nearby"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// DefaultMaxCandidates caps the bounding-box prefetch.
const DefaultMaxCandidates = 5000

// Service answers proximity searches.
type Service struct {
	locator       Locator
	maxCandidates int
	tracer        trace.Tracer
}

// New creates a proximity service. maxCandidates <= 0 selects DefaultMaxCandidates.
func New(locator Locator, maxCandidates int) *Service {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Service{
		locator:       locator,
		maxCandidates: maxCandidates,
		tracer:        otel.Tracer("github.com/kailas-cloud/restodex/internal/usecase/nearby"),
	}
}

type hit struct {
	r    restaurant.Restaurant
	dist float64
}

// Search returns restaurants within the query radius, nearest first, ties by id.
// Candidates come from a bounding-box prefilter and are confirmed with the
// haversine distance.
func (s *Service) Search(ctx context.Context, q nearby.Query) ([]restaurant.Restaurant, error) {
	ctx, span := s.tracer.Start(ctx, "nearby.Search", trace.WithAttributes(
		attribute.Float64("latitude", q.Latitude()),
		attribute.Float64("longitude", q.Longitude()),
		attribute.Float64("radius_km", q.RadiusKm()),
	))
	defer span.End()

	candidates, truncated, err := s.locator.InBox(ctx, q.Box(), s.maxCandidates)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate scan failed")
		return nil, fmt.Errorf("scan candidates: %w", err)
	}
	if truncated {
		metrics.NearbyCandidatesTruncatedTotal.Inc()
		logger.FromContext(ctx).Warn("Proximity candidates truncated",
			zap.Float64("latitude", q.Latitude()),
			zap.Float64("longitude", q.Longitude()),
			zap.Float64("radius_km", q.RadiusKm()),
			zap.Int("max_candidates", s.maxCandidates),
		)
	}

	hits := make([]hit, 0, len(candidates))
	for _, c := range candidates {
		lat, lon, ok := c.Coordinates()
		if !ok {
			continue
		}
		if d := q.DistanceKm(lat, lon); d <= q.RadiusKm() {
			hits = append(hits, hit{r: c, dist: d})
		}
	}

	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.r.ID, b.r.ID)
	})

	out := make([]restaurant.Restaurant, len(hits))
	for i := range hits {
		out[i] = hits[i].r
	}

	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("results.count", len(out)),
		attribute.Bool("truncated", truncated),
	)
	return out, nil
}
