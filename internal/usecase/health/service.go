package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const checkTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	Restaurants int // -1 when the catalog check did not run or failed
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogCounter
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog CatalogCounter) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	checks := make(map[string]CheckResult, 2)
	restaurants := -1

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	// An unreachable database makes the catalog check redundant.
	if s.catalog != nil && checks["database"] == CheckOK {
		if n, err := s.catalog.Count(ctx, ""); err != nil {
			checks["catalog"] = CheckError
		} else {
			checks["catalog"] = CheckOK
			restaurants = n
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Restaurants: restaurants}
}
