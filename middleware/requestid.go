package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/pipebridge/core/handler"
)

// RequestIDKey is the Items key holding the request ID. Dictionary
// middleware sharing the context see it under the same environment key.
const RequestIDKey = "request.id"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting determines whether to use an existing request ID from the incoming request
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// It generates a new UUID for each request and publishes it in Items and the
// response headers.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var requestID string

			// An upstream dictionary middleware may already have assigned one.
			if id, ok := GetRequestID(ctx); ok {
				requestID = id
			}

			if requestID == "" && cfg.UseExisting {
				if r := ctx.Request(); r != nil {
					requestID = r.Header.Get(cfg.HeaderName)
				}
			}

			if requestID == "" {
				requestID = cfg.Generator()
			}

			ctx.Items().Set(RequestIDKey, requestID)
			ctx.Header().Set(cfg.HeaderName, requestID)

			return next(ctx)
		}
	}
}

// GetRequestID retrieves the request ID from the context's Items.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := handler.Item[string](ctx, RequestIDKey)
	return id, ok && id != ""
}
