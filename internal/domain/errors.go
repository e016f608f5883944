package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter signals a rejected query parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrRestaurantNotFound signals a missing restaurant.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrInvalidRecord signals a restaurant record that cannot be stored.
	ErrInvalidRecord = errors.New("invalid restaurant record")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)

// ParameterError wraps ErrInvalidParameter with the offending parameter name.
type ParameterError struct {
	Name   string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParameter.Error(), e.Name, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// NewParameterError creates a parameter validation error.
func NewParameterError(name, reason string) error {
	return &ParameterError{Name: name, Reason: reason}
}
