package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// ErrNotLoggedIn indicates a protected call was made before Login.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError carries an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}
