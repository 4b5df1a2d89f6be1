package bridge

import (
	"log/slog"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// Option configures a bridge.
type Option[C handler.Context] func(*config[C])

type config[C handler.Context] struct {
	services handler.ServiceResolver
	logger   *slog.Logger
	factory  func(env.Environment) C
}

func newConfig[C handler.Context](opts []Option[C]) *config[C] {
	cfg := &config[C]{
		services: handler.NoServices,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithServices sets the service resolver exposed to the embedded typed
// sub-chain. Without it, lookups report "not found".
func WithServices[C handler.Context](r handler.ServiceResolver) Option[C] {
	return func(c *config[C]) {
		if r != nil {
			c.services = r
		}
	}
}

// WithLogger sets a logger for bridge diagnostics.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(c *config[C]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContextFactory sets how a typed context is built over an environment
// that does not already carry one.
func WithContextFactory[C handler.Context](f func(env.Environment) C) Option[C] {
	return func(c *config[C]) {
		c.factory = f
	}
}
