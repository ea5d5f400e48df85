package backend

import (
	"errors"
	"fmt"
)

// Sentinel errors for the statuses the pages branch on. 401 means the
// session is simply gone (not worth logging), 403 gets its own access-denied
// view, 404 gets the not-found view.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)

// APIError carries the human-readable message the backend attached to a
// validation or server failure
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}
