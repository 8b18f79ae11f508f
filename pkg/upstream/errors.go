package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx upstream response, carrying the status and
// the body text for surfacing to the caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err is an upstream 401. Policy: a 401
// invalidates the gateway session.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is an upstream 403. Policy: a 403 is
// surfaced as a permission error and never clears the session.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
