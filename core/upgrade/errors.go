package upgrade

import "errors"

var (
	// ErrAlreadyNegotiated is returned when a negotiator is invoked a second time for the same request.
	ErrAlreadyNegotiated = errors.New("upgrade: already negotiated")

	// ErrRequestCompleted is returned when negotiation is attempted after the response path finished.
	ErrRequestCompleted = errors.New("upgrade: request already completed")

	// ErrNotNegotiated is returned by Complete when no negotiation took place.
	ErrNotNegotiated = errors.New("upgrade: not negotiated")

	// ErrAlreadyCompleted is returned by Complete when the connection was already supplied.
	ErrAlreadyCompleted = errors.New("upgrade: already completed")

	// ErrNilConn is returned by Complete when the transport supplies no connection.
	ErrNilConn = errors.New("upgrade: nil connection")

	// ErrNilContinuation is returned when the callback shape is invoked without a continuation.
	ErrNilContinuation = errors.New("upgrade: nil continuation")

	// ErrNilFuture is returned when a future-shaped negotiator returns no future.
	ErrNilFuture = errors.New("upgrade: negotiator returned nil future")
)
