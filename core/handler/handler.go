package handler

// HandlerFunc is a type-safe request handler with custom context support.
// The returned error is the completion signal of the call.
type HandlerFunc[C Context] func(ctx C) error

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
