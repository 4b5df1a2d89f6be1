package services

import (
	"reflect"
	"sync"

	"github.com/dmitrymomot/pipebridge/core/handler"
)

// Registry is a type-keyed service resolver.
// A request scope created with Scope resolves its own providers first and
// falls back to its parent.
type Registry struct {
	mu        sync.RWMutex
	providers map[reflect.Type]func() any
	parent    handler.ServiceResolver
}

var _ handler.ServiceResolver = (*Registry)(nil)

// New creates an empty registry.
func New() *Registry {
	return &Registry{providers: make(map[reflect.Type]func() any)}
}

// Provide registers a factory for T, invoked on every resolution.
func Provide[T any](r *Registry, fn func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[reflect.TypeFor[T]()] = func() any { return fn() }
}

// Singleton registers a fixed value for T.
func Singleton[T any](r *Registry, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[reflect.TypeFor[T]()] = func() any { return v }
}

// Resolve implements handler.ServiceResolver.
func (r *Registry) Resolve(t reflect.Type) (any, bool) {
	r.mu.RLock()
	fn, ok := r.providers[t]
	r.mu.RUnlock()

	if ok {
		return fn(), true
	}
	if r.parent != nil {
		return r.parent.Resolve(t)
	}
	return nil, false
}

// Get resolves T from r.
func Get[T any](r handler.ServiceResolver) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.Resolve(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Scope creates a child registry for one request.
func (r *Registry) Scope() *Registry {
	child := New()
	child.parent = r
	return child
}
