package chain

import "errors"

var (
	// ErrNilDecorator is returned when a nil decorator is registered or a decorator returns nil.
	ErrNilDecorator = errors.New("chain: nil decorator")

	// ErrNilTerminal is returned when the terminal callable is nil.
	ErrNilTerminal = errors.New("chain: nil terminal")

	// ErrBuilderFrozen is returned when decorators are added after Build.
	ErrBuilderFrozen = errors.New("chain: builder already built")
)
