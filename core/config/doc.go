// Package config loads typed configuration from the process environment.
//
// Load reads a .env file from the working directory the first time it runs,
// then parses the environment into the target struct with caarlos0/env, using
// the struct's env and envDefault tags. A missing .env file is not an error.
//
// The result is cached per type, so the server, websocket and application
// settings can be loaded from different packages without parsing twice:
//
//	var srv server.Config
//	config.MustLoad(&srv) // SERVER_ADDR, SERVER_READ_TIMEOUT, ...
//
//	var ws host.Config
//	if err := config.Load(&ws); err != nil { // WS_READ_BUFFER_SIZE, ...
//		return err
//	}
//
// Nested structs are parsed as part of their parent and cached under the
// parent's type:
//
//	type Config struct {
//		Server    server.Config
//		WebSocket host.Config
//		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
// Reset drops the cache so tests can reload after t.Setenv.
package config
