package host

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
)

// Option configures a typed host during creation.
type Option[C handler.Context] func(*Host[C])

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(hs *Host[C]) {
		if h != nil {
			hs.errorHandler = h
		}
	}
}

// WithMiddleware adds middleware ahead of anything registered with Use.
func WithMiddleware[C handler.Context](ms ...handler.Middleware[C]) Option[C] {
	return func(hs *Host[C]) {
		hs.Use(ms...)
	}
}

// WithContextFactory sets the function turning the host's base context into C.
// Required unless C is *Context.
func WithContextFactory[C handler.Context](f func(base *Context) C) Option[C] {
	return func(hs *Host[C]) {
		hs.newContext = f
	}
}

// WithLogger sets the host logger.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(hs *Host[C]) {
		hs.transport.setLogger(l)
	}
}

// WithServices sets the application service resolver.
func WithServices[C handler.Context](r handler.ServiceResolver) Option[C] {
	return func(hs *Host[C]) {
		hs.transport.services = r
	}
}

// WithConfig applies protocol upgrade settings.
func WithConfig[C handler.Context](cfg Config) Option[C] {
	return func(hs *Host[C]) {
		hs.transport.configure(cfg)
	}
}

// WithOriginCheck sets the origin policy for protocol upgrades.
func WithOriginCheck[C handler.Context](fn func(r *http.Request) bool) Option[C] {
	return func(hs *Host[C]) {
		hs.transport.upgrader.CheckOrigin = fn
	}
}

// EnvOption configures a dictionary host during creation.
type EnvOption func(*EnvHost)

// WithEnvErrorHandler sets a custom error handler.
func WithEnvErrorHandler(h func(e env.Environment, err error)) EnvOption {
	return func(hs *EnvHost) {
		if h != nil {
			hs.errorHandler = h
		}
	}
}

// WithEnvMiddleware adds middleware ahead of anything registered with Use.
func WithEnvMiddleware(ms ...env.Middleware) EnvOption {
	return func(hs *EnvHost) {
		hs.Use(ms...)
	}
}

// WithEnvLogger sets the host logger.
func WithEnvLogger(l *slog.Logger) EnvOption {
	return func(hs *EnvHost) {
		hs.transport.setLogger(l)
	}
}

// WithEnvServices sets the resolver published under server.Services.
func WithEnvServices(r handler.ServiceResolver) EnvOption {
	return func(hs *EnvHost) {
		hs.transport.services = r
	}
}

// WithEnvConfig applies protocol upgrade settings.
func WithEnvConfig(cfg Config) EnvOption {
	return func(hs *EnvHost) {
		hs.transport.configure(cfg)
	}
}

// WithEnvOriginCheck sets the origin policy for protocol upgrades.
func WithEnvOriginCheck(fn func(r *http.Request) bool) EnvOption {
	return func(hs *EnvHost) {
		hs.transport.upgrader.CheckOrigin = fn
	}
}

func allowAnyOrigin(*http.Request) bool { return true }

func defaultUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}
