package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned by New when the service URL or anon key is
// missing. Callers run the core components unconfigured in that case.
var ErrNotConfigured = errors.New("remote: service URL and anon key are required")

// Error is a structured failure reported by the TrekZone service.
// Error() returns the service's message unchanged so it can be shown to people.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

// UserMessage returns the raw message, which may be empty.
func (e *Error) UserMessage() string {
	return e.Message
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var re *Error
	return errors.As(err, &re) && re.Status == status
}
