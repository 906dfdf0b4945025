package gymapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by NewClient for an unusable configuration
	ErrInvalidConfig = errors.New("invalid gym api config")

	// ErrNetwork is returned when the request was sent but no response arrived
	ErrNetwork = errors.New("network error")

	// ErrInvalidRequest is returned for arguments rejected before any request
	ErrInvalidRequest = errors.New("invalid request")
)

// APIError is returned when the API answered with a non-2xx status.
type APIError struct {
	StatusCode int
	// Message is the "message" (or "title") field of the response body, if any
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gym api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("gym api: status %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the status of an *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
