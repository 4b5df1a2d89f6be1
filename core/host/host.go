package host

import (
	"net/http"
	"sync"

	"github.com/dmitrymomot/pipebridge/core/chain"
	"github.com/dmitrymomot/pipebridge/core/handler"
)

// Host serves HTTP through a typed middleware pipeline.
//
// Middleware registered with Use runs in registration order around the
// terminal handler set with Run. The pipeline is composed on the first
// request; Use and Run must not be called after that.
type Host[C handler.Context] struct {
	transport

	builder      *chain.Builder[handler.HandlerFunc[C]]
	terminal     handler.HandlerFunc[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(base *Context) C

	once sync.Once
	app  handler.HandlerFunc[C]
}

var _ http.Handler = (*Host[*Context])(nil)

// New creates a typed host. Unless C is *Context, a context factory must be
// supplied with WithContextFactory.
func New[C handler.Context](opts ...Option[C]) *Host[C] {
	h := &Host[C]{
		transport: newTransport(),
		builder:   chain.NewBuilder[handler.HandlerFunc[C]](),
		terminal:  NotFound[C],
	}
	h.errorHandler = h.defaultErrorHandler

	for _, opt := range opts {
		opt(h)
	}

	if h.newContext == nil {
		if _, ok := any((*Context)(nil)).(C); !ok {
			panic(ErrNoContextFactory)
		}
		h.newContext = func(base *Context) C {
			return any(base).(C)
		}
	}

	return h
}

// Use appends middleware to the pipeline.
func (h *Host[C]) Use(ms ...handler.Middleware[C]) {
	for _, m := range ms {
		h.builder.Add(chain.Decorator[handler.HandlerFunc[C]](m))
	}
}

// Run sets the terminal handler. Defaults to NotFound.
func (h *Host[C]) Run(terminal handler.HandlerFunc[C]) {
	if terminal != nil {
		h.terminal = terminal
	}
}

// Handler composes the pipeline. Composition errors panic: they are
// programming errors that must surface at startup.
func (h *Host[C]) Handler() handler.HandlerFunc[C] {
	h.once.Do(func() {
		app, err := h.builder.Build(h.terminal)
		if err != nil {
			panic(err)
		}
		h.app = app
	})
	return h.app
}

// ServeHTTP implements http.Handler.
func (h *Host[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app := h.Handler()

	n := h.negotiation(r)
	base := newContext(w, r, h.scope(), n)
	ctx := h.newContext(base)

	err := h.run(func() error { return app(ctx) })
	if err != nil && h.fail(ctx, base.w, r, err) {
		h.errorHandler(ctx, err)
	}
	h.finish(ctx, base.w, r, n, err)
}

func (h *Host[C]) defaultErrorHandler(ctx C, err error) {
	w := http.ResponseWriter(nil)
	if c, ok := any(ctx).(interface{ ResponseWriter() http.ResponseWriter }); ok {
		w = c.ResponseWriter()
	}
	if w == nil {
		ctx.SetStatus(statusOf(err))
		return
	}
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}
	writeError(w, err)
}

// NotFound is the default terminal handler of a typed host.
func NotFound[C handler.Context](ctx C) error {
	ctx.SetStatus(http.StatusNotFound)
	return nil
}
