package env

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnlyKey is returned when writing or deleting a synthesized key.
	ErrReadOnlyKey = errors.New("env: key is read-only")

	// ErrInvalidValue is returned when a well-known key is written with a value of the wrong type.
	ErrInvalidValue = errors.New("env: invalid value for key")

	// ErrResponseStarted is returned when the status code is written after the
	// response has been committed.
	ErrResponseStarted = errors.New("env: response already started")
)

func readOnly(key string) error {
	return fmt.Errorf("%w: %s", ErrReadOnlyKey, key)
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w: %s got %T", ErrInvalidValue, key, value)
}
