package chi

import "github.com/kailas-cloud/restodex/internal/domain/restaurant"

// ErrorCode is the machine-readable error identifier in ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeInvalidParameter ErrorCode = "invalid_parameter"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeNotImplemented   ErrorCode = "not_implemented"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ListResponse is the GET /restaurants envelope.
type ListResponse struct {
	Page             int                     `json:"page"`
	PageSize         int                     `json:"pageSize"`
	TotalPages       int                     `json:"totalPages"`
	TotalRestaurants int                     `json:"totalRestaurants"`
	Restaurants      []restaurant.Restaurant `json:"restaurants"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Restaurants *int              `json:"restaurants,omitempty"`
}

// ListParams are the GET /restaurants query parameters.
type ListParams struct {
	Page   *int    `json:"page,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
	Search *string `json:"search,omitempty"`
}

// LocationParams are the GET /locationR query parameters.
type LocationParams struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Radius    *float64 `json:"radius,omitempty"`
}
