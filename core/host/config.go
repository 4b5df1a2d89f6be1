package host

import "time"

// Config holds the protocol upgrade settings of a host.
type Config struct {
	ReadBufferSize    int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize   int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	HandshakeTimeout  time.Duration `env:"WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	AllowAnyOrigin    bool          `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
	EnableCompression bool          `env:"WS_ENABLE_COMPRESSION" envDefault:"false"`
}
