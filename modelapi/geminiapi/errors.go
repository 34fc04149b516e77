package geminiapi

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means the Gemini API key is missing from the
// process environment.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// ErrEmptyResult means the model answered but produced nothing usable.
var ErrEmptyResult = errors.New("model returned no usable content")

// UpstreamError carries a non-success status from the Gemini API so
// callers can pass rate-limit and quota signals through.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini api returned status %d: %s", e.StatusCode, e.Body)
}
