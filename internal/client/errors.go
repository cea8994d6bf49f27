package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoResponse wraps every failure where the server never answered,
// DNS, refused connections, timeouts.
var ErrNoResponse = errors.New("no response from server")

// StatusError is returned when the server answered with a non 2xx status.
type StatusError struct {
	Code int
	// first bytes of the response body, for logs only
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// IsPermissionDenied reports whether err carries a 403 from the server.
func IsPermissionDenied(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusForbidden
}
