package upgrade

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/pipebridge/core/logger"
	"github.com/dmitrymomot/pipebridge/pkg/async"
)

// State of a per-request upgrade negotiation.
type State int

const (
	// StateNoUpgradeRequested is the initial state; it is also terminal when nobody negotiates.
	StateNoUpgradeRequested State = iota
	// StateNegotiated means a continuation is registered and waits for the transport.
	StateNegotiated
	// StateCompleted means the transport supplied the connection and the continuation ran.
	StateCompleted
	// StateFailed means the transport reported that the upgrade could not be completed.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNoUpgradeRequested:
		return "no_upgrade_requested"
	case StateNegotiated:
		return "negotiated"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Shape is the calling convention a negotiator was invoked with.
type Shape string

const (
	ShapeCallback Shape = "callback"
	ShapeFuture   Shape = "future"
)

// Option configures a Negotiation or a negotiator adapter.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report contract violations.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Negotiation is the two-phase upgrade state machine for one request.
//
// Phase 1 (Accept or AcceptFuture) runs inside the middleware chain and only
// registers a continuation. Phase 2 (Complete) is driven by the transport once
// the handshake is done. Both negotiator shapes are thin translations over the
// same registered continuation, so a Negotiation is consumed at most once.
type Negotiation struct {
	mu      sync.Mutex
	state   State
	shape   Shape
	opts    *Options
	sealed  bool
	onReady func(Conn) error
	onFail  func(error)
	log     *slog.Logger
}

// New creates a negotiation in StateNoUpgradeRequested.
func New(opts ...Option) *Negotiation {
	return &Negotiation{log: newConfig(opts).logger}
}

// Accept is the callback-shaped negotiator. fn runs once the transport completes
// the upgrade; its error is returned to the transport from Complete.
func (n *Negotiation) Accept(opts *Options, fn func(Conn) error) error {
	if fn == nil {
		return ErrNilContinuation
	}
	return n.negotiate(ShapeCallback, opts, fn, nil)
}

// AcceptFuture is the future-shaped negotiator. The future resolves with the
// connection when the transport completes the upgrade, and is rejected if the
// transport fails it. Contract violations come back as an already rejected future.
//
// The transport completes the upgrade after the middleware chain has unwound,
// so awaiting the future before returning from the chain blocks until ctx ends.
// Use Then, or await from a separate goroutine.
func (n *Negotiation) AcceptFuture(opts *Options) *async.Future[Conn] {
	f := async.New[Conn]()
	err := n.negotiate(ShapeFuture, opts,
		func(c Conn) error {
			f.Resolve(c)
			return nil
		},
		func(err error) {
			f.Reject(err)
		},
	)
	if err != nil {
		f.Reject(err)
	}
	return f
}

func (n *Negotiation) negotiate(shape Shape, opts *Options, onReady func(Conn) error, onFail func(error)) error {
	n.mu.Lock()
	var err error
	switch {
	case n.state != StateNoUpgradeRequested:
		err = fmt.Errorf("%w: previously via %s shape", ErrAlreadyNegotiated, n.shape)
	case n.sealed:
		err = ErrRequestCompleted
	default:
		if opts == nil {
			opts = &Options{}
		}
		n.state = StateNegotiated
		n.shape = shape
		n.opts = opts
		n.onReady = onReady
		n.onFail = onFail
	}
	n.mu.Unlock()

	if err != nil {
		n.log.Warn("upgrade negotiator misuse",
			logger.Component("upgrade"),
			logger.Shape(string(shape)),
			logger.Error(err),
		)
	}
	return err
}

// Complete supplies the established connection and runs the registered
// continuation exactly once. It returns the continuation's error.
func (n *Negotiation) Complete(conn Conn) error {
	if conn == nil {
		return ErrNilConn
	}

	n.mu.Lock()
	switch n.state {
	case StateNegotiated:
	case StateCompleted:
		n.mu.Unlock()
		return ErrAlreadyCompleted
	default:
		n.mu.Unlock()
		return ErrNotNegotiated
	}
	n.state = StateCompleted
	fn := n.onReady
	n.onReady, n.onFail = nil, nil
	n.mu.Unlock()

	return fn(conn)
}

// Fail records that the transport could not complete the upgrade.
// Callback continuations never run; future-shaped callers observe err.
// Returns false when there was no pending negotiation.
func (n *Negotiation) Fail(err error) bool {
	n.mu.Lock()
	if n.state != StateNegotiated {
		n.mu.Unlock()
		return false
	}
	n.state = StateFailed
	fn := n.onFail
	n.onReady, n.onFail = nil, nil
	n.mu.Unlock()

	if fn != nil {
		fn(err)
	}
	return true
}

// Seal marks the normal response path as finished. Negotiating afterwards
// returns ErrRequestCompleted. A pending negotiation can still be completed.
func (n *Negotiation) Seal() {
	n.mu.Lock()
	n.sealed = true
	n.mu.Unlock()
}

// State returns the current state.
func (n *Negotiation) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Pending reports whether a continuation waits for the transport.
func (n *Negotiation) Pending() bool {
	return n.State() == StateNegotiated
}

// Shape returns the shape used to negotiate, or "" if not negotiated.
func (n *Negotiation) Shape() Shape {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shape
}

// Options returns the accept options supplied at negotiation, or nil.
func (n *Negotiation) Options() *Options {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.opts
}
