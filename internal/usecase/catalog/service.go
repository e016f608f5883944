package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

const tracerName = "github.com/kailas-cloud/restodex/internal/usecase/catalog"

// Service serves paginated listings and single restaurants.
type Service struct {
	repo   Repository
	tracer trace.Tracer
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo, tracer: otel.Tracer(tracerName)}
}

// List fetches the page described by q. The total and the page are read
// concurrently; the first failure cancels the other query.
func (s *Service) List(ctx context.Context, q listing.Query) (listing.Page, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.List", trace.WithAttributes(
		attribute.Int("page", q.Page()),
		attribute.Int("limit", q.Limit()),
		attribute.Bool("search", q.Search() != ""),
	))
	defer span.End()

	var (
		total int
		items []restaurant.Restaurant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(gctx, q.Search())
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		page, err := s.repo.List(gctx, q.Search(), q.Offset(), q.Limit())
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		items = page
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog query failed")
		return listing.Page{}, err
	}

	page := listing.NewPage(q, total, items)
	span.SetAttributes(
		attribute.Int("results.count", len(page.Restaurants())),
		attribute.Int("results.total", total),
	)
	return page, nil
}

// Get returns one restaurant. A blank id is reported as not found.
func (s *Service) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Get", trace.WithAttributes(attribute.String("id", id)))
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return restaurant.Restaurant{}, domain.ErrRestaurantNotFound
	}

	r, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get failed")
		return restaurant.Restaurant{}, fmt.Errorf("get %s: %w", id, err)
	}
	return r, nil
}
