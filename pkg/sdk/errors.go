package restodex

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Sentinel errors. Use errors.Is() to check; *APIError matches them by code.
var (
	ErrNotFound          = domain.ErrRestaurantNotFound
	ErrInvalidParameter  = domain.ErrInvalidParameter
	ErrNotImplemented    = domain.ErrNotImplemented
	ErrRateLimited       = domain.ErrRateLimited
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNavigationBlocked = errors.New("navigation not available")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("restodex: %d %s: %s", e.Status, e.Code, e.Message)
}

// Is maps the server error code to the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == "not_found"
	case ErrInvalidParameter:
		return e.Code == "invalid_parameter"
	case ErrNotImplemented:
		return e.Code == "not_implemented"
	case ErrRateLimited:
		return e.Code == "rate_limited"
	case ErrUnauthorized:
		return e.Code == "unauthorized"
	}
	return false
}

// codeForStatus fills in a code when the body carried none.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_parameter"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusNotImplemented:
		return "not_implemented"
	default:
		return "internal_error"
	}
}

// ValidationError rejects search form input before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
