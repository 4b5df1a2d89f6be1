// Package host provides reference HTTP hosts for both middleware conventions.
//
// A typed host runs handler.Middleware[C] around a terminal handler:
//
//	h := host.New[*host.Context](host.WithLogger[*host.Context](log))
//	h.Use(middleware.RequestID[*host.Context]())
//	h.Run(func(ctx *host.Context) error {
//		_, err := io.WriteString(ctx.Body(), "hello")
//		return err
//	})
//
// A dictionary host runs env.Middleware around an env.AppFunc, publishing the
// request through the well-known environment keys:
//
//	h := host.NewEnv()
//	h.Run(func(e env.Environment) error {
//		return e.Set(env.KeyResponseStatusCode, http.StatusNoContent)
//	})
//
// Both hosts hold the response status until the first body write, recover
// panics into a PanicError and complete protocol upgrades negotiated during
// the chain with gorilla/websocket once the chain has unwound. A callback
// continuation runs on the request goroutine and the host closes the
// connection when it returns; a future-shaped caller owns the connection and
// must close it.
package host
