package upgrade

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/pipebridge/core/logger"
	"github.com/dmitrymomot/pipebridge/pkg/async"
)

// AcceptFunc is the callback-shaped negotiator: it registers fn and returns
// immediately; fn runs once the connection is established.
type AcceptFunc func(opts *Options, fn func(Conn) error) error

// AcceptFutureFunc is the future-shaped negotiator: it returns a future that
// resolves with the established connection.
type AcceptFutureFunc func(opts *Options) *async.Future[Conn]

// Negotiator exposes one upgrade capability in both shapes.
// *Negotiation implements it, as do the adapters returned by FromCallback and FromFuture.
type Negotiator interface {
	Accept(opts *Options, fn func(Conn) error) error
	AcceptFuture(opts *Options) *async.Future[Conn]
}

var _ Negotiator = (*Negotiation)(nil)

// guard enforces at-most-once use across both shapes of an adapter.
type guard struct {
	used atomic.Bool
	log  *slog.Logger
}

func (g *guard) claim(shape Shape) error {
	if g.used.CompareAndSwap(false, true) {
		return nil
	}
	g.log.Warn("upgrade negotiator misuse",
		logger.Component("upgrade"),
		logger.Shape(string(shape)),
		logger.Error(ErrAlreadyNegotiated),
	)
	return ErrAlreadyNegotiated
}

// FromCallback adapts a callback-shaped negotiator to both shapes.
// The future shape registers a continuation that resolves the returned future.
func FromCallback(accept AcceptFunc, opts ...Option) Negotiator {
	if accept == nil {
		return nil
	}
	return &callbackNegotiator{
		accept: accept,
		guard:  guard{log: newConfig(opts).logger},
	}
}

type callbackNegotiator struct {
	accept AcceptFunc
	guard
}

func (c *callbackNegotiator) Accept(opts *Options, fn func(Conn) error) error {
	if fn == nil {
		return ErrNilContinuation
	}
	if err := c.claim(ShapeCallback); err != nil {
		return err
	}
	return c.accept(opts, fn)
}

func (c *callbackNegotiator) AcceptFuture(opts *Options) *async.Future[Conn] {
	if err := c.claim(ShapeFuture); err != nil {
		return async.Rejected[Conn](err)
	}
	f := async.New[Conn]()
	err := c.accept(opts, func(conn Conn) error {
		f.Resolve(conn)
		return nil
	})
	if err != nil {
		f.Reject(err)
	}
	return f
}

// FromFuture adapts a future-shaped negotiator to both shapes.
// The callback shape runs fn when the future resolves. If the future is
// already resolved, fn runs synchronously and its error is returned from
// Accept; otherwise a continuation error is logged, since the transport only
// observes the future.
func FromFuture(accept AcceptFutureFunc, opts ...Option) Negotiator {
	if accept == nil {
		return nil
	}
	return &futureNegotiator{
		accept: accept,
		guard:  guard{log: newConfig(opts).logger},
	}
}

type futureNegotiator struct {
	accept AcceptFutureFunc
	guard
}

func (f *futureNegotiator) Accept(opts *Options, fn func(Conn) error) error {
	if fn == nil {
		return ErrNilContinuation
	}
	if err := f.claim(ShapeCallback); err != nil {
		return err
	}

	fut := f.accept(opts)
	if fut == nil {
		return ErrNilFuture
	}

	if fut.IsComplete() {
		conn, err := fut.Await(context.Background())
		if err != nil {
			return err
		}
		return fn(conn)
	}

	fut.Then(func(conn Conn, err error) {
		if err != nil {
			return
		}
		if err := fn(conn); err != nil {
			f.log.Error("upgrade continuation failed",
				logger.Component("upgrade"),
				logger.Shape(string(ShapeCallback)),
				logger.Error(err),
			)
		}
	})
	return nil
}

func (f *futureNegotiator) AcceptFuture(opts *Options) *async.Future[Conn] {
	if err := f.claim(ShapeFuture); err != nil {
		return async.Rejected[Conn](err)
	}
	fut := f.accept(opts)
	if fut == nil {
		return async.Rejected[Conn](ErrNilFuture)
	}
	return fut
}
