package domain

import (
	"errors"
	"strings"
)

var (
	// ErrProductNotFound is returned when a product id or slug has no catalog entry
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProviderNotConfigured is returned when no AI provider credential is configured
	ErrProviderNotConfigured = errors.New("AI provider not configured")

	// ErrProviderFailure is returned when the AI provider request fails
	ErrProviderFailure = errors.New("AI provider request failed")

	// ErrInvalidResponse is returned when the AI provider reply cannot be parsed
	ErrInvalidResponse = errors.New("invalid response format from AI service")

	// ErrRateLimited is returned when the outbound rate limiter rejects a call
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// MissingFieldsError reports quiz answers that are still unset. It matches ErrInvalidRequest.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing answers: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrInvalidRequest
}
