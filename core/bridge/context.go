package bridge

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// EnvContext is a handler.Context facade over an environment.
//
// The status code, response headers and response body read and write
// through to the environment's well-known keys. Items is a bag seeded from
// the environment's remaining keys; the bridge copies it back at every
// synchronization point.
type EnvContext struct {
	context.Context

	env      env.Environment
	items    handler.Items
	services handler.ServiceResolver
	upgrader upgrade.Negotiator
}

var _ handler.Context = (*EnvContext)(nil)

// NewEnvContext builds a facade over e. Without a resolver the one published
// under server.Services is used, if any.
func NewEnvContext(e env.Environment, services handler.ServiceResolver, log *slog.Logger) *EnvContext {
	parent, ok := env.Lookup[context.Context](e, env.KeyCallCancelled)
	if !ok || parent == nil {
		parent = context.Background()
	}
	if services == nil || services == handler.NoServices {
		services = handler.NoServices
		if r, ok := env.Lookup[handler.ServiceResolver](e, env.KeyServerServices); ok && r != nil {
			services = r
		}
	}

	var opts []upgrade.Option
	if log != nil {
		opts = append(opts, upgrade.WithLogger(log))
	}

	return &EnvContext{
		Context:  parent,
		env:      e,
		items:    handler.Items{},
		services: services,
		upgrader: env.Negotiator(e, opts...),
	}
}

// Environment returns the backing environment.
func (c *EnvContext) Environment() env.Environment {
	return c.env
}

// Request returns the request published under server.Request, if any.
func (c *EnvContext) Request() *http.Request {
	r, _ := env.Lookup[*http.Request](c.env, env.KeyServerRequest)
	return r
}

// Items returns the extension bag.
func (c *EnvContext) Items() handler.Items {
	return c.items
}

// Services returns the configured resolver, or the environment's.
func (c *EnvContext) Services() handler.ServiceResolver {
	return c.services
}

// Status returns the environment's status code, 200 when unset.
func (c *EnvContext) Status() int {
	if code, ok := env.Status(c.env); ok {
		return code
	}
	return http.StatusOK
}

// SetStatus writes the environment's status code.
func (c *EnvContext) SetStatus(code int) {
	_ = c.env.Set(env.KeyResponseStatusCode, code)
}

// Header returns the environment's response headers, publishing an empty
// set first when the environment has none.
func (c *EnvContext) Header() http.Header {
	if h, ok := env.Lookup[http.Header](c.env, env.KeyResponseHeaders); ok && h != nil {
		return h
	}
	h := http.Header{}
	_ = c.env.Set(env.KeyResponseHeaders, h)
	return h
}

// Body returns the environment's response body, or io.Discard when unset.
func (c *EnvContext) Body() io.Writer {
	if w, ok := env.Lookup[io.Writer](c.env, env.KeyResponseBody); ok && w != nil {
		return w
	}
	return io.Discard
}

// SetBody replaces the environment's response body.
func (c *EnvContext) SetBody(w io.Writer) {
	_ = c.env.Set(env.KeyResponseBody, w)
}

// Upgrader returns a negotiator assembled from the environment's upgrade
// keys, or nil when the environment publishes neither.
func (c *EnvContext) Upgrader() upgrade.Negotiator {
	return c.upgrader
}
