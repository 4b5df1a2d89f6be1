package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// Context defines the contract for typed request contexts.
// A Context is owned by the host for exactly one request and shared by
// reference with every middleware invoked during it.
type Context interface {
	context.Context

	// Request returns the incoming request, or nil when the context was
	// synthesized without one.
	Request() *http.Request

	// Items returns the live per-request extension bag.
	Items() Items

	// Services returns the request-scoped service resolver. Never nil.
	Services() ServiceResolver

	// Status returns the response status code.
	Status() int
	// SetStatus sets the response status code.
	SetStatus(code int)

	// Header returns the response headers.
	Header() http.Header

	// Body returns the response body sink.
	Body() io.Writer
	// SetBody replaces the response body sink.
	SetBody(w io.Writer)

	// Upgrader returns the protocol-upgrade negotiator, or nil when the
	// connection does not support upgrading.
	Upgrader() upgrade.Negotiator
}

// Items is a mutable key-value bag for per-request extension data.
type Items map[string]any

// Get returns the value stored under key.
func (i Items) Get(key string) (any, bool) {
	v, ok := i[key]
	return v, ok
}

// Set stores val under key.
func (i Items) Set(key string, val any) {
	i[key] = val
}

// Delete removes key.
func (i Items) Delete(key string) {
	delete(i, key)
}

// Item returns the value under key asserted to T.
// Returns false when the key is absent or holds another type.
func Item[T any](c Context, key string) (T, bool) {
	v, ok := c.Items()[key].(T)
	return v, ok
}
