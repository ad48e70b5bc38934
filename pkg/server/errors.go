package server

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPage is returned when no page is registered for a path.
	ErrUnknownPage = errors.New("server: unknown page")

	// ErrHandlerPanic is returned when a page callback panics.
	ErrHandlerPanic = errors.New("server: handler panic")
)

// LiveError wraps an error with the page and connection it occurred on.
type LiveError struct {
	Page string
	Conn string
	Op   string
	Err  error
}

// Error returns the error message with connection context.
func (e *LiveError) Error() string {
	return fmt.Sprintf("server: %s %s (%s): %v", e.Op, e.Page, e.Conn, e.Err)
}

// Unwrap returns the underlying error.
func (e *LiveError) Unwrap() error {
	return e.Err
}
