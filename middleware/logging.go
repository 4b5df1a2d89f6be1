package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// LoggingConfig configures the request/response logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for request logging (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogRequest enables logging of request details (default: true)
	LogRequest bool

	// LogResponse enables logging of response details (default: true)
	LogResponse bool

	// LogRequestBody enables logging of request body (default: false for security)
	LogRequestBody bool

	// LogHeaders enables logging of request/response headers (default: false for security)
	LogHeaders bool

	// MaxBodyLogSize is the maximum size of body to log in bytes (default: 4KB)
	MaxBodyLogSize int

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request/response logging middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig creates a request/response logging middleware with custom configuration.
// The response size is measured by wrapping the context's body for the
// duration of the call.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if !cfg.LogRequest && !cfg.LogResponse {
		cfg.LogRequest = true
		cfg.LogResponse = true
	}

	if cfg.MaxBodyLogSize <= 0 {
		cfg.MaxBodyLogSize = 4 * 1024
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			requestID, _ := GetRequestID(ctx)

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("request"),
				logger.RequestID(requestID),
			}

			req := ctx.Request()
			if req != nil {
				attrs = append(attrs,
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.RemoteAddr(req.RemoteAddr),
					logger.Query(req.URL.RawQuery),
				)

				if cfg.LogRequestBody && req.Body != nil {
					body, _ := io.ReadAll(req.Body)
					req.Body = io.NopCloser(bytes.NewReader(body))

					if len(body) > 0 {
						if len(body) > cfg.MaxBodyLogSize {
							body = body[:cfg.MaxBodyLogSize]
							attrs = append(attrs, slog.Bool("request_body_truncated", true))
						}
						attrs = append(attrs, slog.String("request_body", string(body)))
					}
				}

				if cfg.LogHeaders {
					if h := redact(req.Header, cfg.SensitiveHeaders); len(h) > 0 {
						attrs = append(attrs, slog.Any("request_headers", h))
					}
				}
			}

			if cfg.LogRequest {
				cfg.Logger.LogAttrs(ctx, cfg.LogLevel, "HTTP request started", attrs...)
			}

			body := ctx.Body()
			counter := &countingWriter{w: body}
			ctx.SetBody(counter)
			defer ctx.SetBody(body)

			err := next(ctx)

			duration := time.Since(start)
			status := ctx.Status()

			respAttrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("response"),
				logger.RequestID(requestID),
				logger.StatusCode(status),
				logger.BytesOut(counter.n),
				logger.Duration(duration),
			}
			if req != nil {
				respAttrs = append(respAttrs, logger.Method(req.Method), logger.Path(req.URL.Path))
			}

			if cfg.LogHeaders {
				if h := redact(ctx.Header(), cfg.SensitiveHeaders); len(h) > 0 {
					respAttrs = append(respAttrs, slog.Any("response_headers", h))
				}
			}

			level := cfg.LogLevel
			switch {
			case err != nil || status >= 500:
				level = slog.LevelError
				respAttrs = append(respAttrs, logger.Error(err))
			case status >= 400:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				respAttrs = append(respAttrs, slog.Bool("slow_request", true))
			}

			if cfg.LogResponse {
				cfg.Logger.LogAttrs(ctx, level, "HTTP request completed", respAttrs...)
			}

			return err
		}
	}
}

func redact(header http.Header, sensitive []string) map[string]any {
	out := make(map[string]any, len(header))
	for key, values := range header {
		switch {
		case slices.Contains(sensitive, key):
			out[key] = "[REDACTED]"
		case len(values) == 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}
	return out
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
