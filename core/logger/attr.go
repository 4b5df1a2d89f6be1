package logger

import (
	"log/slog"
	"runtime"
	"time"
)

// Attribute helpers return an empty Attr for zero inputs where that makes
// sense, so calls like log.Warn("msg", logger.Error(err)) need no nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates the duration since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names a lifecycle event.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// EnvKey creates an attribute for an environment dictionary key.
func EnvKey(key string) slog.Attr {
	return slog.String("env_key", key)
}

// Shape names the calling shape of an upgrade negotiator ("callback" or "future").
func Shape(shape string) slog.Attr {
	if shape == "" {
		return slog.Attr{}
	}
	return slog.String("shape", shape)
}

// Stack captures the current goroutine's stack trace.
func Stack() slog.Attr {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return slog.String("stack", string(buf[:n]))
}

// Panic creates an attribute for a recovered panic value.
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("panic", v)
}

// RemoteAddr creates an attribute for the client network address.
func RemoteAddr(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("remote_addr", addr)
}

// Query creates an attribute for a raw URL query string.
func Query(q string) slog.Attr {
	if q == "" {
		return slog.Attr{}
	}
	return slog.String("query", q)
}

// BytesOut creates an attribute for the number of response bytes written.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}
