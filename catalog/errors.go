package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("catalog: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("catalog: http client cannot be nil")
	// ErrNotFound indicates the requested collection or granule does not
	// exist for the given provider.
	ErrNotFound = errors.New("catalog: not found")
	// ErrResolverExhausted indicates the cloud-holding resolver hit its
	// page safety cap before the upstream signaled end-of-results. The
	// cap should never be reached in practice; reaching it is an anomaly
	// that must be surfaced rather than returned as truncated data.
	ErrResolverExhausted = errors.New("catalog: cloud collection paging exceeded safety cap")
)

// APIError represents a Catalog Service error payload or HTTP failure.
type APIError struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
	Raw    []byte   `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Errors) == 0 {
		return fmt.Sprintf("catalog: api error status=%d", e.Status)
	}
	return fmt.Sprintf("catalog: %s (status=%d)", e.Errors[0], e.Status)
}

// Temporary reports whether the error may be retried.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}
