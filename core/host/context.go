package host

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// Context is the handler.Context a typed host builds for every request.
//
// The status code is held until the first body write, so middleware can
// change it at any point before the response starts.
type Context struct {
	context.Context

	w           *responseWriter
	r           *http.Request
	items       handler.Items
	services    handler.ServiceResolver
	negotiation *upgrade.Negotiation
	status      int
	body        io.Writer
}

var _ handler.Context = (*Context)(nil)

// newContext wires a context for one request. n is nil when the request
// does not ask for a protocol upgrade.
func newContext(w http.ResponseWriter, r *http.Request, services handler.ServiceResolver, n *upgrade.Negotiation) *Context {
	if services == nil {
		services = handler.NoServices
	}
	c := &Context{
		Context:     r.Context(),
		r:           r,
		items:       handler.Items{},
		services:    services,
		negotiation: n,
		status:      http.StatusOK,
	}
	c.w = newResponseWriter(w, c.Status)
	c.body = c.w
	return c
}

// Request returns the HTTP request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the wrapped response writer.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

func (c *Context) Items() handler.Items {
	return c.items
}

func (c *Context) Services() handler.ServiceResolver {
	return c.services
}

// Status returns the pending status code. After the response has started it
// returns the committed one.
func (c *Context) Status() int {
	if c.w.Written() {
		return c.w.Status()
	}
	return c.status
}

// SetStatus changes the pending status code. It has no effect once the
// response has started.
func (c *Context) SetStatus(code int) {
	c.status = code
}

func (c *Context) Header() http.Header {
	return c.w.Header()
}

func (c *Context) Body() io.Writer {
	return c.body
}

// SetBody replaces the response body stream. A nil writer discards output.
func (c *Context) SetBody(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.body = w
}

// Upgrader returns nil unless the request asked for a protocol upgrade.
func (c *Context) Upgrader() upgrade.Negotiator {
	if c.negotiation == nil {
		return nil
	}
	return c.negotiation
}

// Negotiation returns the upgrade negotiation of the request, or nil.
func (c *Context) Negotiation() *upgrade.Negotiation {
	return c.negotiation
}
