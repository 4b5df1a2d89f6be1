package bridge

import (
	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// UseTyped embeds a typed-convention sub-chain in a dictionary pipeline.
//
// configure receives a Builder to register typed middleware and, optionally,
// a terminal handler with Run. Per request the returned dictionary middleware
// reuses the typed context published under env.KeyContext when it is a C,
// and otherwise builds one with the configured factory (an *EnvContext by
// default, which requires C to accept it).
//
// Mutations of the context's Items that are not live through the environment
// are copied back before the outer next runs and after the sub-chain returns;
// environment changes made further down the pipeline are pulled back in when
// next returns, so the typed "after" halves observe them.
//
// With nothing registered the middleware is a pass-through.
func UseTyped[C handler.Context](configure func(b *Builder[C]), opts ...Option[C]) (env.Middleware, error) {
	cfg := newConfig(opts)

	b := &Builder[C]{services: cfg.services}
	if configure != nil {
		configure(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	factory := cfg.factory
	if factory == nil {
		if _, ok := any((*EnvContext)(nil)).(C); !ok {
			return nil, ErrNoContextFactory
		}
		factory = func(e env.Environment) C {
			return any(NewEnvContext(e, cfg.services, cfg.logger)).(C)
		}
	}

	// Validate the typed composition before any request is served.
	if _, err := b.compose(func(C) error { return nil }); err != nil {
		return nil, err
	}

	return func(next env.AppFunc) env.AppFunc {
		if len(b.ms) == 0 && b.run == nil {
			return next
		}

		terminal := b.run
		if terminal == nil {
			terminal = func(ctx C) error {
				f, ok := frameOf(ctx)
				if !ok {
					cfg.logger.Error("typed sub-chain continued with an unbound context", logger.Component("bridge"), logger.Error(ErrFrameLost))
					return ErrFrameLost
				}
				f.push()
				err := next(f.env)
				f.pull()
				return err
			}
		}

		typed, err := b.compose(terminal)
		if err != nil {
			panic(err)
		}

		return func(e env.Environment) error {
			ctx, ok := env.Lookup[C](e, env.KeyContext)
			if !ok {
				ctx = factory(e)
			}

			f := newFrame(e, ctx, cfg.logger)
			f.pull()
			detach := f.attach()
			defer detach()

			err := typed(ctx)
			f.push()
			return err
		}
	}, nil
}

// MustUseTyped is like UseTyped but panics on a composition error.
func MustUseTyped[C handler.Context](configure func(b *Builder[C]), opts ...Option[C]) env.Middleware {
	m, err := UseTyped(configure, opts...)
	if err != nil {
		panic(err)
	}
	return m
}
