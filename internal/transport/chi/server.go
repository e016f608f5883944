package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/nearby"
	"github.com/kailas-cloud/restodex/internal/logger"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits configures request defaults and bounds.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

// Server exposes the restaurant catalog over HTTP.
type Server struct {
	catalog       CatalogService
	nearby        NearbyService
	health        HealthService
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog CatalogService,
	nearbySvc NearbyService,
	health HealthService,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = listing.DefaultLimit
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = listing.MaxLimit
	}
	if limits.DefaultRadiusKm <= 0 {
		limits.DefaultRadiusKm = nearby.DefaultRadiusKm
	}
	if limits.MaxRadiusKm <= 0 {
		limits.MaxRadiusKm = nearby.MaxRadiusKm
	}

	s := &Server{
		catalog: catalog,
		nearby:  nearbySvc,
		health:  health,
		limits:  limits,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		parameterErrorHandler,
		sentinelHandler(domain.ErrRestaurantNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/restaurants", s.ListRestaurants)
	r.Get("/restaurants/{id}", s.GetRestaurant)
	r.Get("/locationR", s.SearchByLocation)
	r.Get("/searchimage", s.SearchByImage)
	r.Post("/searchimage", s.SearchByImage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeInvalidParameter, "method not allowed")
	})
}

// ListRestaurants handles GET /restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	q, err := listing.New(
		derefInt(params.Page, listing.DefaultPage),
		derefInt(params.Limit, s.limits.DefaultPageSize),
		derefString(params.Search),
		s.limits.MaxPageSize,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.catalog.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Page:             page.Number(),
		PageSize:         page.Size(),
		TotalPages:       page.TotalPages(),
		TotalRestaurants: page.Total(),
		Restaurants:      page.Restaurants(),
	})
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SearchByLocation handles GET /locationR.
func (s *Server) SearchByLocation(w http.ResponseWriter, r *http.Request) {
	params, err := bindLocationParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	q, err := nearby.New(
		*params.Latitude,
		*params.Longitude,
		derefFloat(params.Radius, s.limits.DefaultRadiusKm),
		s.limits.MaxRadiusKm,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.nearby.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SearchByImage handles GET and POST /searchimage.
func (s *Server) SearchByImage(w http.ResponseWriter, r *http.Request) {
	s.handleDomainError(w, r, domain.ErrNotImplemented)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	resp := HealthResponse{Status: string(report.Status), Checks: checks}
	if report.Restaurants >= 0 {
		n := report.Restaurants
		resp.Restaurants = &n
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRestaurantNotFound,
		domain.ErrRateLimited,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// parameterErrorHandler reports the offending parameter, which is safe to echo.
func parameterErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrInvalidParameter) {
		return false
	}
	var pe *domain.ParameterError
	if errors.As(err, &pe) {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidParameter, pe.Name+" "+pe.Reason)
		return true
	}
	writeError(w, http.StatusBadRequest, ErrorCodeInvalidParameter, domain.ErrInvalidParameter.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
