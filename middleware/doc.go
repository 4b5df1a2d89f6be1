// Package middleware provides typed middleware for cross-cutting concerns:
// request IDs, request/response logging and security headers.
//
// Every constructor is generic over the context type, so the same middleware
// runs in a typed host and, through bridge.UseTyped, inside a dictionary
// pipeline:
//
//	h := host.New[*host.Context]()
//	h.Use(
//		middleware.RequestID[*host.Context](),
//		middleware.LoggingWithLogger[*host.Context](log),
//		middleware.SecurityHeaders[*host.Context](),
//	)
//
// Values the middleware publish live in the context's Items, which dictionary
// middleware see as ordinary environment keys. RequestID stores its value
// under RequestIDKey and reuses one already present there.
//
// Each constructor has a WithConfig variant; every config accepts a Skip
// function to bypass the middleware for selected requests.
package middleware
