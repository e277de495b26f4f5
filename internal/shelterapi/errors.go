package shelterapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated signals a terminally failed session: the refresh
	// protocol could not produce a usable access token and stored tokens
	// have been cleared. Callers are expected to route to the login flow.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNoRefreshToken is returned when a refresh was required but no
	// refresh token is stored.
	ErrNoRefreshToken = errors.New("no refresh token stored")
)

// APIError represents a non-success HTTP response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthenticated reports whether err means the session is gone and the
// user must log in again.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
