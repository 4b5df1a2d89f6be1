package env

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// Projection is a live Environment view over a handler.Context.
// Well-known keys read and write through to the context's fields; every
// other key reads and writes through to the context's Items. Nothing is
// copied, so a write through either view is visible through the other
// immediately.
type Projection struct {
	ctx      handler.Context
	services handler.ServiceResolver
}

var _ Environment = (*Projection)(nil)

// ProjectOption configures a Projection.
type ProjectOption func(*Projection)

// WithServices publishes r under server.Services in place of the context's
// own resolver.
func WithServices(r handler.ServiceResolver) ProjectOption {
	return func(p *Projection) {
		p.services = r
	}
}

// Project returns the environment view of ctx.
func Project(ctx handler.Context, opts ...ProjectOption) *Projection {
	p := &Projection{ctx: ctx}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Context returns the projected context.
func (p *Projection) Context() handler.Context {
	return p.ctx
}

// Get returns the value under key.
func (p *Projection) Get(key string) (any, bool) {
	if v, ok, handled := p.wellKnown(key); handled {
		return v, ok
	}
	return p.ctx.Items().Get(key)
}

func (p *Projection) wellKnown(key string) (v any, ok, handled bool) {
	switch key {
	case KeyContext:
		return p.ctx, true, true
	case KeyResponseStatusCode:
		return p.ctx.Status(), true, true
	case KeyResponseHeaders:
		return p.ctx.Header(), true, true
	case KeyResponseBody:
		b := p.ctx.Body()
		return b, b != nil, true
	case KeyCallCancelled:
		return context.Context(p.ctx), true, true
	case KeyVersion:
		return Version, true, true
	case KeyServerServices:
		if p.services != nil {
			return p.services, true, true
		}
		return p.ctx.Services(), true, true
	case KeyUpgradeAccept:
		if u := p.ctx.Upgrader(); u != nil {
			return upgrade.AcceptFunc(u.Accept), true, true
		}
		return nil, false, true
	case KeyUpgradeAcceptFuture:
		if u := p.ctx.Upgrader(); u != nil {
			return upgrade.AcceptFutureFunc(u.AcceptFuture), true, true
		}
		return nil, false, true
	}

	if r := p.ctx.Request(); r != nil {
		if v, ok := requestValue(r, key); ok {
			return v, true, true
		}
	}
	return nil, false, false
}

// Set writes value under key. Synthesized keys other than the status code
// and the response body are read-only. A status write that the context
// cannot honour, because the response has started, fails with
// ErrResponseStarted.
func (p *Projection) Set(key string, value any) error {
	switch key {
	case KeyResponseStatusCode:
		code, ok := value.(int)
		if !ok {
			return invalid(key, value)
		}
		p.ctx.SetStatus(code)
		if got := p.ctx.Status(); got != code {
			return fmt.Errorf("%w: status is %d, wrote %d", ErrResponseStarted, got, code)
		}
		return nil
	case KeyResponseBody:
		w, ok := value.(io.Writer)
		if !ok {
			return invalid(key, value)
		}
		p.ctx.SetBody(w)
		return nil
	}
	if p.readOnly(key) {
		return readOnly(key)
	}
	p.ctx.Items().Set(key, value)
	return nil
}

// Delete removes key from the extension bag.
func (p *Projection) Delete(key string) error {
	if p.readOnly(key) || key == KeyResponseStatusCode || key == KeyResponseBody {
		return readOnly(key)
	}
	p.ctx.Items().Delete(key)
	return nil
}

// readOnly reports whether key is synthesized for this context. Request keys
// are only synthesized when a request exists; otherwise they live in Items.
func (p *Projection) readOnly(key string) bool {
	if _, _, handled := p.wellKnown(key); handled {
		return true
	}
	return false
}

// All yields the synthesized keys first, then the extension bag.
func (p *Projection) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		seen := make(map[string]struct{}, len(reserved))
		for _, k := range synthesizedOrder {
			v, ok := p.Get(k)
			if !ok {
				continue
			}
			seen[k] = struct{}{}
			if !yield(k, v) {
				return
			}
		}
		for k, v := range p.ctx.Items() {
			if _, dup := seen[k]; dup {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Len returns the number of visible keys.
func (p *Projection) Len() int {
	n := 0
	for range p.All() {
		n++
	}
	return n
}

var synthesizedOrder = append([]string{
	KeyContext,
	KeyResponseStatusCode,
	KeyResponseHeaders,
	KeyResponseBody,
	KeyCallCancelled,
	KeyVersion,
	KeyServerServices,
	KeyUpgradeAccept,
	KeyUpgradeAcceptFuture,
}, requestKeys...)

// requestValue synthesizes a request key from r.
func requestValue(r *http.Request, key string) (any, bool) {
	switch key {
	case KeyRequestMethod:
		return r.Method, true
	case KeyRequestPath:
		return r.URL.Path, true
	case KeyRequestPathBase:
		return "", true
	case KeyRequestQueryString:
		return r.URL.RawQuery, true
	case KeyRequestScheme:
		if r.TLS != nil {
			return "https", true
		}
		return "http", true
	case KeyRequestProtocol:
		return r.Proto, true
	case KeyRequestHeaders:
		return r.Header, true
	case KeyRequestBody:
		return r.Body, true
	case KeyServerRequest:
		return r, true
	}
	return nil, false
}

// FromRequest returns a Map populated with the request keys of r.
func FromRequest(r *http.Request) Map {
	m := make(Map, len(requestKeys)+8)
	for _, k := range requestKeys {
		if v, ok := requestValue(r, k); ok {
			m[k] = v
		}
	}
	m[KeyCallCancelled] = r.Context()
	m[KeyVersion] = Version
	return m
}
