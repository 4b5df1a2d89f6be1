package bridge

import (
	"fmt"

	"github.com/dmitrymomot/pipebridge/core/chain"
	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// UseEnv embeds a dictionary-convention sub-chain in a typed pipeline.
//
// register receives the add primitive; middleware run in the order added.
// The returned typed middleware projects each context into an environment,
// runs the sub-chain over it and, when the sub-chain's innermost middleware
// calls next, continues with the typed next. The projection is live, so no
// state is copied in either direction.
//
// A resolver given with WithServices is published to the sub-chain under
// server.Services in place of the context's own.
//
// With nothing registered the middleware is a pass-through.
func UseEnv[C handler.Context](register func(add env.AddFunc), opts ...Option[C]) (handler.Middleware[C], error) {
	cfg := newConfig(opts)

	var projectOpts []env.ProjectOption
	if cfg.services != handler.NoServices {
		projectOpts = append(projectOpts, env.WithServices(cfg.services))
	}

	var ms []env.Middleware
	if register != nil {
		register(func(m env.Middleware) { ms = append(ms, m) })
	}
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("%w: dictionary middleware at position %d", chain.ErrNilDecorator, i)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		if len(ms) == 0 {
			return next
		}

		terminal := func(e env.Environment) error {
			ctx, ok := env.Lookup[C](e, env.KeyContext)
			if !ok {
				cfg.logger.Error("dictionary sub-chain lost the typed context", logger.Component("bridge"), logger.Error(ErrContextLost))
				return ErrContextLost
			}
			return next(ctx)
		}

		// Composed once per typed next; reused by every request.
		app := chain.MustCompose(env.AppFunc(terminal), toDecorators(ms)...)

		return func(ctx C) error {
			return app(env.Project(ctx, projectOpts...))
		}
	}, nil
}

// MustUseEnv is like UseEnv but panics on a composition error.
func MustUseEnv[C handler.Context](register func(add env.AddFunc), opts ...Option[C]) handler.Middleware[C] {
	m, err := UseEnv(register, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func toDecorators(ms []env.Middleware) []chain.Decorator[env.AppFunc] {
	ds := make([]chain.Decorator[env.AppFunc], len(ms))
	for i, m := range ms {
		ds[i] = chain.Decorator[env.AppFunc](m)
	}
	return ds
}
