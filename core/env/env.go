package env

import (
	"iter"
	"maps"

	"github.com/dmitrymomot/pipebridge/core/chain"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
	"github.com/dmitrymomot/pipebridge/pkg/async"
)

// Environment is the dictionary-convention request carrier.
// Probing an absent key returns (nil, false); it never fails.
type Environment interface {
	Get(key string) (any, bool)
	Set(key string, value any) error
	Delete(key string) error
	All() iter.Seq2[string, any]
	Len() int
}

// AppFunc is the dictionary-convention callable. The returned error is the
// completion signal of the call.
type AppFunc func(e Environment) error

// Middleware wraps an AppFunc with before/after behavior.
type Middleware func(next AppFunc) AppFunc

// AddFunc appends one middleware to the pipeline being built.
type AddFunc func(m Middleware)

// Inline adapts the two-argument form, where the middleware receives the
// environment and a continuation, to Middleware.
func Inline(fn func(e Environment, next func() error) error) Middleware {
	return func(next AppFunc) AppFunc {
		return func(e Environment) error {
			return fn(e, func() error { return next(e) })
		}
	}
}

// Compose folds ms around terminal; the first middleware is the outermost.
func Compose(terminal AppFunc, ms ...Middleware) (AppFunc, error) {
	ds := make([]chain.Decorator[AppFunc], len(ms))
	for i, m := range ms {
		if m != nil {
			ds[i] = chain.Decorator[AppFunc](m)
		}
	}
	return chain.Compose(terminal, ds...)
}

// MustCompose is like Compose but panics on error.
func MustCompose(terminal AppFunc, ms ...Middleware) AppFunc {
	app, err := Compose(terminal, ms...)
	if err != nil {
		panic(err)
	}
	return app
}

// Build runs register with an add primitive and folds the collected
// middleware around terminal.
func Build(terminal AppFunc, register func(add AddFunc)) (AppFunc, error) {
	var ms []Middleware
	if register != nil {
		register(func(m Middleware) { ms = append(ms, m) })
	}
	return Compose(terminal, ms...)
}

// NotFound is the default terminal: it answers 404.
func NotFound(e Environment) error {
	return e.Set(KeyResponseStatusCode, 404)
}

// Map is a plain dictionary Environment.
type Map map[string]any

var _ Environment = Map(nil)

// Get returns the value under key.
func (m Map) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value under key.
func (m Map) Set(key string, value any) error {
	m[key] = value
	return nil
}

// Delete removes key.
func (m Map) Delete(key string) error {
	delete(m, key)
	return nil
}

// All iterates over every entry.
func (m Map) All() iter.Seq2[string, any] {
	return maps.All(m)
}

// Len returns the number of entries.
func (m Map) Len() int {
	return len(m)
}

// Lookup returns the value under key asserted to T.
func Lookup[T any](e Environment, key string) (T, bool) {
	var zero T
	v, ok := e.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Status returns the response status code.
func Status(e Environment) (int, bool) {
	return Lookup[int](e, KeyResponseStatusCode)
}

// ContextOf returns the handler.Context published under KeyContext.
func ContextOf(e Environment) (handler.Context, bool) {
	return Lookup[handler.Context](e, KeyContext)
}

// Negotiator assembles an upgrade.Negotiator from the upgrade keys present in e.
// When only one shape is published the other is adapted from it.
// Returns nil when neither key is present.
func Negotiator(e Environment, opts ...upgrade.Option) upgrade.Negotiator {
	accept, hasAccept := acceptFuncOf(e)
	future, hasFuture := acceptFutureFuncOf(e)

	switch {
	case hasAccept && hasFuture:
		return &pairNegotiator{accept: accept, future: future}
	case hasAccept:
		return upgrade.FromCallback(accept, opts...)
	case hasFuture:
		return upgrade.FromFuture(future, opts...)
	default:
		return nil
	}
}

// acceptFuncOf accepts both the named and the plain func form of the callback shape.
func acceptFuncOf(e Environment) (upgrade.AcceptFunc, bool) {
	v, ok := e.Get(KeyUpgradeAccept)
	if !ok {
		return nil, false
	}
	switch f := v.(type) {
	case upgrade.AcceptFunc:
		return f, f != nil
	case func(*upgrade.Options, func(upgrade.Conn) error) error:
		return f, f != nil
	}
	return nil, false
}

func acceptFutureFuncOf(e Environment) (upgrade.AcceptFutureFunc, bool) {
	v, ok := e.Get(KeyUpgradeAcceptFuture)
	if !ok {
		return nil, false
	}
	switch f := v.(type) {
	case upgrade.AcceptFutureFunc:
		return f, f != nil
	case func(*upgrade.Options) *async.Future[upgrade.Conn]:
		return f, f != nil
	}
	return nil, false
}

// pairNegotiator joins both published shapes. They are expected to front the
// same negotiation, which enforces at-most-once across them.
type pairNegotiator struct {
	accept upgrade.AcceptFunc
	future upgrade.AcceptFutureFunc
}

func (p *pairNegotiator) Accept(opts *upgrade.Options, fn func(upgrade.Conn) error) error {
	return p.accept(opts, fn)
}

func (p *pairNegotiator) AcceptFuture(opts *upgrade.Options) *async.Future[upgrade.Conn] {
	return p.future(opts)
}
