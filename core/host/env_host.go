package host

import (
	"net/http"
	"sync"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// EnvHost serves HTTP through a dictionary middleware pipeline.
//
// Every request gets an env.Map carrying the request keys, the response
// status, headers and body, the request-scoped services and, for upgrade
// requests, both shapes of the upgrade negotiator.
type EnvHost struct {
	transport

	ms           []env.Middleware
	terminal     env.AppFunc
	errorHandler func(e env.Environment, err error)

	once sync.Once
	app  env.AppFunc
}

var _ http.Handler = (*EnvHost)(nil)

// NewEnv creates a dictionary host.
func NewEnv(opts ...EnvOption) *EnvHost {
	h := &EnvHost{
		transport: newTransport(),
		terminal:  EnvNotFound,
	}
	h.errorHandler = h.defaultErrorHandler

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Use appends middleware to the pipeline.
func (h *EnvHost) Use(ms ...env.Middleware) {
	h.ms = append(h.ms, ms...)
}

// Run sets the terminal application. Defaults to EnvNotFound.
func (h *EnvHost) Run(terminal env.AppFunc) {
	if terminal != nil {
		h.terminal = terminal
	}
}

// Handler composes the pipeline, panicking on composition errors.
func (h *EnvHost) Handler() env.AppFunc {
	h.once.Do(func() {
		h.app = env.MustCompose(h.terminal, h.ms...)
	})
	return h.app
}

// ServeHTTP implements http.Handler.
func (h *EnvHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app := h.Handler()

	e := env.FromRequest(r)
	ww := newResponseWriter(w, func() int {
		code, _ := env.Status(e)
		return code
	})
	e[env.KeyResponseStatusCode] = http.StatusOK
	e[env.KeyResponseHeaders] = ww.Header()
	e[env.KeyResponseBody] = ww
	e[env.KeyServerServices] = h.scope()

	n := h.negotiation(r)
	if n != nil {
		e[env.KeyUpgradeAccept] = upgrade.AcceptFunc(n.Accept)
		e[env.KeyUpgradeAcceptFuture] = upgrade.AcceptFutureFunc(n.AcceptFuture)
	}

	ctx := r.Context()
	err := h.run(func() error { return app(e) })
	if err != nil && h.fail(ctx, ww, r, err) {
		h.errorHandler(e, err)
	}
	h.finish(ctx, ww, r, n, err)
}

func (h *EnvHost) defaultErrorHandler(e env.Environment, err error) {
	w, ok := env.Lookup[http.ResponseWriter](e, env.KeyResponseBody)
	if !ok {
		_ = e.Set(env.KeyResponseStatusCode, statusOf(err))
		return
	}
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}
	writeError(w, err)
}

// EnvNotFound is the default terminal application of a dictionary host.
func EnvNotFound(e env.Environment) error {
	return env.NotFound(e)
}
