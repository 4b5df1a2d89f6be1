package chain

import (
	"fmt"
	"reflect"
)

// Decorator wraps a next callable and returns its replacement.
// H is the callable type of the convention being composed, for example
// handler.HandlerFunc[C] or env.AppFunc.
type Decorator[H any] func(next H) H

// Compose folds decorators around terminal into a single callable.
// The first decorator becomes the outermost wrapper, so invoking the result
// is equivalent to ds[0](ds[1](...ds[n](terminal))).
//
// Composition errors are reported here, before any request is served.
func Compose[H any](terminal H, ds ...Decorator[H]) (H, error) {
	var zero H
	if isNil(terminal) {
		return zero, ErrNilTerminal
	}
	for i, d := range ds {
		if d == nil {
			return zero, fmt.Errorf("%w: position %d", ErrNilDecorator, i)
		}
	}

	h := terminal
	// Reverse iteration ensures first decorator becomes outermost wrapper
	for i := len(ds) - 1; i >= 0; i-- {
		h = ds[i](h)
		if isNil(h) {
			return zero, fmt.Errorf("%w: decorator at position %d returned nil", ErrNilDecorator, i)
		}
	}
	return h, nil
}

// MustCompose is like Compose but panics on a composition error.
func MustCompose[H any](terminal H, ds ...Decorator[H]) H {
	h, err := Compose(terminal, ds...)
	if err != nil {
		panic(err)
	}
	return h
}

// isNil reports whether v is nil or a nil func, map, pointer, chan, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Map, reflect.Pointer, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
