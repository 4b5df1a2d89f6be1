package bridge

import "errors"

var (
	// ErrNoContextFactory is returned when the typed sub-chain's context type
	// cannot be built from an environment and no factory was configured.
	ErrNoContextFactory = errors.New("bridge: no context factory for context type")

	// ErrContextLost is returned when a dictionary sub-chain calls next with an
	// environment that no longer carries the typed context.
	ErrContextLost = errors.New("bridge: environment lost the typed context")

	// ErrFrameLost is returned when a typed sub-chain continues with a context
	// the bridge did not enter.
	ErrFrameLost = errors.New("bridge: typed context is not bound to an environment")
)
