package chain

import (
	"fmt"
	"sync"
)

// Builder accumulates decorators in registration order and folds them once.
// After Build the builder is frozen; the composed callable holds no reference
// to the builder's mutable state.
type Builder[H any] struct {
	mu     sync.Mutex
	ds     []Decorator[H]
	frozen bool
	err    error
}

// NewBuilder creates a builder pre-populated with ds.
func NewBuilder[H any](ds ...Decorator[H]) *Builder[H] {
	b := &Builder[H]{}
	b.Use(ds...)
	return b
}

// Use appends decorators in call order.
// Errors (nil decorator, use after Build) are recorded and returned by Build.
func (b *Builder[H]) Use(ds ...Decorator[H]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		b.recordErr(ErrBuilderFrozen)
		return
	}
	for _, d := range ds {
		if d == nil {
			b.recordErr(fmt.Errorf("%w: position %d", ErrNilDecorator, len(b.ds)))
			continue
		}
		b.ds = append(b.ds, d)
	}
}

// Add appends a single decorator. Its method value is the "add decorator"
// primitive handed to registration callbacks.
func (b *Builder[H]) Add(d Decorator[H]) {
	b.Use(d)
}

// Len returns the number of registered decorators.
func (b *Builder[H]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ds)
}

// Decorators returns a copy of the registered decorators.
func (b *Builder[H]) Decorators() []Decorator[H] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Decorator[H](nil), b.ds...)
}

// Build freezes the builder and composes the registered decorators around terminal.
// Build may be called more than once, for example with different terminals.
func (b *Builder[H]) Build(terminal H) (H, error) {
	b.mu.Lock()
	b.frozen = true
	err := b.err
	ds := append([]Decorator[H](nil), b.ds...)
	b.mu.Unlock()

	if err != nil {
		var zero H
		return zero, err
	}
	return Compose(terminal, ds...)
}

// recordErr keeps the first registration error. Caller must hold b.mu.
func (b *Builder[H]) recordErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
