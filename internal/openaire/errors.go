package openaire

import (
	"errors"
	"fmt"
)

// Common errors returned by the OpenAIRE client. Callers in the
// reconciliation engine treat every error as "no result"; the
// distinctions exist for diagnostics.
var (
	// ErrNetwork indicates a transport failure (timeout, connection error).
	ErrNetwork = errors.New("network error communicating with OpenAIRE")

	// ErrRateLimited indicates the rate limit has been exceeded upstream.
	ErrRateLimited = errors.New("OpenAIRE rate limit exceeded")

	// ErrMalformedResponse indicates a payload that did not parse as the
	// expected structure.
	ErrMalformedResponse = errors.New("malformed response from OpenAIRE")
)

// APIError represents a non-success status from the OpenAIRE API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAIRE API error (status %d): %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}
