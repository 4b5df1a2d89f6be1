package handler

import "reflect"

// ServiceResolver resolves request-scoped services by type.
// Resolve returns false when no provider is configured for t.
type ServiceResolver interface {
	Resolve(t reflect.Type) (any, bool)
}

// Service resolves a service of type T from the context's resolver.
func Service[T any](c Context) (T, bool) {
	var zero T
	r := c.Services()
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

// NoServices is a resolver with no providers.
var NoServices ServiceResolver = noServices{}

type noServices struct{}

func (noServices) Resolve(reflect.Type) (any, bool) { return nil, false }
