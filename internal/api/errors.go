package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEmail is returned before any request when the address does
	// not look like name@domain.tld.
	ErrInvalidEmail = errors.New("api: invalid email format")

	// ErrEmptyText is returned before any request when a required field is
	// blank.
	ErrEmptyText = errors.New("api: text is required")
)

// TransportError wraps a failure to reach the server or read its reply.
// Calls are never retried.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
