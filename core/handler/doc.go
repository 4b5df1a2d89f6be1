// Package handler defines the typed-context middleware convention.
//
// A request is represented by a Context carrying a live extension bag
// (Items), a request-scoped ServiceResolver, the response status, headers,
// body sink and, when the connection supports it, an upgrade negotiator.
//
//	type HandlerFunc[C Context] func(ctx C) error
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Middleware
//
//	func Timing[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) error {
//				start := time.Now()
//				err := next(ctx)
//				ctx.Header().Set("Server-Timing", fmt.Sprintf("app;dur=%d", time.Since(start).Milliseconds()))
//				return err
//			}
//		}
//	}
//
// A middleware that returns without calling next short-circuits the chain;
// this is how early responses are produced.
//
// # Items and services
//
//	ctx.Items().Set("tenant", "acme")
//	tenant, ok := handler.Item[string](ctx, "tenant")
//
//	db, ok := handler.Service[*sql.DB](ctx)
//	if !ok {
//		// no provider configured; not an error
//	}
package handler
