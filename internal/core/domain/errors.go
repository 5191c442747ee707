package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown entity type or component kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMissingConfig indicates a required configuration value is absent.
	ErrMissingConfig = errors.New("missing configuration")

	// Authentication Errors.

	// ErrAuthRejected indicates the API rejected the credential twice in a row.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrTokenMissing indicates a token exchange returned no usable token.
	ErrTokenMissing = errors.New("token response missing access_token")

	// Fetch Errors.

	// ErrPageLimitExceeded indicates a paginated fetch hit the configured page ceiling.
	ErrPageLimitExceeded = errors.New("page limit exceeded")

	// ErrUnexpectedShape indicates a response body did not have the expected JSON shape.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// UnknownEntityID is reported when a failing entity has no usable id.
const UnknownEntityID = "UNKNOWN"

// AuthError reports a failed credential exchange. It is fatal for the run.
type AuthError struct {
	// URL is the authorisation endpoint.
	URL string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: token exchange with %s failed: %v", e.URL, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError reports a fatal failure while fetching one endpoint.
// StatusCode is zero when no HTTP response was received (timeout, transport
// failure, JSON decoding failure).
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("fetch: request to %s failed with %d: %s", e.URL, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("fetch: request to %s failed with %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch: request to %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NormalizationError reports that a single entity could not be normalised.
// The entity is skipped; the batch continues.
type NormalizationError struct {
	EntityID string
	Err      error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalise entity %s: %v", e.EntityID, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is or wraps an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsFetchError reports whether err is or wraps a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
