package host

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
	"github.com/dmitrymomot/pipebridge/core/services"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
)

// transport holds what both hosts share: the logger, the service resolver
// and the gorilla upgrader completing negotiated upgrades.
type transport struct {
	logger   *slog.Logger
	services handler.ServiceResolver
	upgrader websocket.Upgrader
}

func newTransport() transport {
	return transport{
		logger:   logger.Nop(),
		services: handler.NoServices,
		upgrader: defaultUpgrader(),
	}
}

func (t *transport) setLogger(l *slog.Logger) {
	if l != nil {
		t.logger = l
	}
}

func (t *transport) configure(cfg Config) {
	if cfg.ReadBufferSize > 0 {
		t.upgrader.ReadBufferSize = cfg.ReadBufferSize
	}
	if cfg.WriteBufferSize > 0 {
		t.upgrader.WriteBufferSize = cfg.WriteBufferSize
	}
	t.upgrader.HandshakeTimeout = cfg.HandshakeTimeout
	t.upgrader.EnableCompression = cfg.EnableCompression
	if cfg.AllowAnyOrigin {
		t.upgrader.CheckOrigin = allowAnyOrigin
	}
}

// scope returns the resolver for one request.
func (t *transport) scope() handler.ServiceResolver {
	if r, ok := t.services.(*services.Registry); ok {
		return r.Scope()
	}
	if t.services == nil {
		return handler.NoServices
	}
	return t.services
}

// negotiation returns a fresh negotiation for upgrade requests, nil otherwise.
func (t *transport) negotiation(r *http.Request) *upgrade.Negotiation {
	if !websocket.IsWebSocketUpgrade(r) {
		return nil
	}
	return upgrade.New(upgrade.WithLogger(t.logger))
}

// run invokes fn, turning a panic into a PanicError.
func (t *transport) run(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec, stack: debug.Stack()}
		}
	}()
	return fn()
}

// finish ends the request after the chain has unwound: it fails a pending
// negotiation on error, completes it otherwise and commits the pending status
// code when nothing has been written.
func (t *transport) finish(ctx context.Context, w *responseWriter, r *http.Request, n *upgrade.Negotiation, chainErr error) {
	if n != nil {
		n.Seal()
		if chainErr != nil {
			n.Fail(chainErr)
		}
		if n.Pending() {
			t.upgrade(ctx, w, r, n)
			return
		}
	}
	if !w.Written() {
		w.commit()
	}
}

// upgrade performs the handshake and hands the connection to the negotiation.
// A callback-shaped continuation owns the connection only while it runs; the
// host closes it afterwards. A future-shaped caller owns the connection.
func (t *transport) upgrade(ctx context.Context, w *responseWriter, r *http.Request, n *upgrade.Negotiation) {
	log := t.logger.With(
		logger.Component("host"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
	)

	if w.Written() {
		n.Fail(ErrResponseStarted)
		log.WarnContext(ctx, "upgrade negotiated after response started")
		return
	}

	up := t.upgrader
	header := http.Header{}
	if opts := n.Options(); opts != nil {
		if opts.Subprotocol != "" {
			up.Subprotocols = []string{opts.Subprotocol}
		}
		for k, v := range opts.Header {
			header[k] = v
		}
	}

	conn, err := up.Upgrade(w, r, header)
	if err != nil {
		n.Fail(err)
		log.WarnContext(ctx, "protocol upgrade failed", logger.Error(err))
		return
	}

	shape := n.Shape()
	if err := n.Complete(conn); err != nil {
		log.ErrorContext(ctx, "upgraded connection handler failed",
			logger.Shape(string(shape)),
			logger.Error(err),
		)
	}
	if shape == upgrade.ShapeCallback {
		_ = conn.Close()
	}
}

// fail logs err and reports whether the response can still carry an error.
func (t *transport) fail(ctx context.Context, w *responseWriter, r *http.Request, err error) bool {
	attrs := []any{
		logger.Component("host"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	}
	if pe, ok := err.(PanicError); ok {
		attrs = append(attrs, slog.String("stack", string(pe.Stack())))
	}
	t.logger.ErrorContext(ctx, "request failed", attrs...)
	return !w.Written()
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusOf(err))
}
