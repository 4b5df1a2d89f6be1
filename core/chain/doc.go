// Package chain composes ordered decorators into a single callable.
//
// It is convention-agnostic: the callable type H is a type parameter, so the
// same fold serves typed-context handlers and environment-dictionary
// application functions alike.
//
// # Ordering
//
// The first registered decorator is the outermost wrapper. For decorators
// A, B, C around terminal T, the "before" halves run A, B, C, then T, and the
// "after" halves run C, B, A:
//
//	type Handler func(*[]string) error
//
//	tag := func(in, out string) chain.Decorator[Handler] {
//		return func(next Handler) Handler {
//			return func(log *[]string) error {
//				*log = append(*log, in)
//				err := next(log)
//				*log = append(*log, out)
//				return err
//			}
//		}
//	}
//
//	h := chain.MustCompose(terminal, tag("a", "A"), tag("b", "B"), tag("c", "C"))
//	// a b c <terminal> C B A
//
// A decorator that does not call next short-circuits the chain. Errors and
// panics unwind through every frame that was entered.
//
// # Builder
//
// Builder collects decorators incrementally, which makes its Add method value
// usable as a registration primitive:
//
//	b := chain.NewBuilder[Handler]()
//	register(b.Add)
//	h, err := b.Build(terminal)
//
// Composition happens once; the resulting callable keeps no mutable state and
// is safe for concurrent use across requests.
package chain
