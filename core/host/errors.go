package host

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrHijackUnsupported = errors.New("response writer does not support hijacking")
	ErrResponseStarted   = errors.New("response already started, cannot upgrade")
	ErrNoContextFactory  = errors.New("no context factory provided")
	ErrNotFound          = errors.New("not found")
)

// statusCode is implemented by errors that carry their own HTTP status.
type statusCode interface {
	StatusCode() int
}

// statusOf returns the status carried by err, or 500.
func statusOf(err error) int {
	var sc statusCode
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// PanicError lets error handlers detect recovered panics.
// The host wraps a recovered panic value in an error implementing it.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to reach a panicked error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
