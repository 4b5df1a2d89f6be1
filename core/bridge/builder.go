package bridge

import (
	"fmt"

	"github.com/dmitrymomot/pipebridge/core/chain"
	"github.com/dmitrymomot/pipebridge/core/handler"
)

// Builder collects the typed sub-chain embedded in a dictionary pipeline.
type Builder[C handler.Context] struct {
	ms       []handler.Middleware[C]
	run      handler.HandlerFunc[C]
	services handler.ServiceResolver
	err      error
}

// Use appends typed middleware in call order.
func (b *Builder[C]) Use(ms ...handler.Middleware[C]) {
	for _, m := range ms {
		if m == nil {
			if b.err == nil {
				b.err = fmt.Errorf("%w: typed middleware at position %d", chain.ErrNilDecorator, len(b.ms))
			}
			continue
		}
		b.ms = append(b.ms, m)
	}
}

// Run sets a terminal handler. The sub-chain then ends there and never
// continues into the outer dictionary pipeline.
func (b *Builder[C]) Run(h handler.HandlerFunc[C]) {
	b.run = h
}

// Services returns the application services available to the sub-chain.
// It is never nil.
func (b *Builder[C]) Services() handler.ServiceResolver {
	return b.services
}

func (b *Builder[C]) compose(terminal handler.HandlerFunc[C]) (handler.HandlerFunc[C], error) {
	ds := make([]chain.Decorator[handler.HandlerFunc[C]], len(b.ms))
	for i, m := range b.ms {
		ds[i] = chain.Decorator[handler.HandlerFunc[C]](m)
	}
	return chain.Compose(terminal, ds...)
}
