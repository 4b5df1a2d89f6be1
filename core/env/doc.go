// Package env defines the environment-dictionary middleware convention and
// projects typed contexts into it.
//
// A request is an Environment: string keys mapped to arbitrary values, with a
// fixed vocabulary of well-known keys (see keys.go). Middleware wrap a next
// AppFunc:
//
//	type AppFunc func(e env.Environment) error
//	type Middleware func(next env.AppFunc) env.AppFunc
//
// The two-argument form is supported through Inline:
//
//	add(env.Inline(func(e env.Environment, next func() error) error {
//		e.Set("trace", "on")
//		return next()
//	}))
//
// # Projection
//
// Project returns a live view over a handler.Context:
//
//	e := env.Project(ctx)
//	e.Set(env.KeyResponseStatusCode, 201) // ctx.Status() == 201
//	ctx.Items().Set("user", u)            // e.Get("user") returns u
//
// The status code and response body read and write through to the context.
// The context back-reference, response headers, request keys, cancellation
// and the upgrade negotiators are synthesized and read-only. Everything else
// lives in the context's Items.
//
// # Capability probing
//
// Upgrade support is detected by key presence:
//
//	if accept, ok := env.Lookup[upgrade.AcceptFunc](e, env.KeyUpgradeAccept); ok {
//		err := accept(nil, serve)
//	}
//
// Absent keys return (nil, false) and never fail the chain.
package env
