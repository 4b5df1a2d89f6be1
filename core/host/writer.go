package host

import (
	"bufio"
	"net"
	"net/http"
)

// responseWriter wraps http.ResponseWriter, tracks whether the header has
// been committed and defers the status code until the first write.
type responseWriter struct {
	http.ResponseWriter
	status  func() int
	code    int
	written bool
}

func newResponseWriter(w http.ResponseWriter, status func() int) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		status:         status,
	}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.code = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

// Write commits the pending status code on first use.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.commit()
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) commit() {
	code := http.StatusOK
	if w.status != nil {
		if s := w.status(); s > 0 {
			code = s
		}
	}
	w.WriteHeader(code)
}

// Written returns true if the header has been committed.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the committed status code, or 0.
func (w *responseWriter) Status() int {
	return w.code
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		if !w.written {
			w.commit()
		}
		f.Flush()
	}
}

// Hijack implements http.Hijacker for protocol upgrades.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, ErrHijackUnsupported
	}
	return h.Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
