package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrProfileUnavailable means the profile could not be fetched or decoded.
// No report can be produced without it.
var ErrProfileUnavailable = errors.New("profile unavailable")

// StatusError is returned when GitHub answers with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d %s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// NewStatusError creates a new StatusError.
func NewStatusError(url string, statusCode int) error {
	return &StatusError{URL: url, StatusCode: statusCode}
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
