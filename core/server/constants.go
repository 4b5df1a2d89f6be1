package server

import "time"

// Defaults applied by New and DefaultConfig.
const (
	DefaultAddr = ":8080"

	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is zero: http.Server sets the write deadline before
	// the handler runs and a hijacked websocket connection keeps it, so any
	// non-zero value caps the lifetime of every upgraded connection.
	DefaultWriteTimeout time.Duration = 0

	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes is 1 MiB.
	DefaultMaxHeaderBytes = 1 << 20
)
