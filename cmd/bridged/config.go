package main

import (
	"github.com/dmitrymomot/pipebridge/core/host"
	"github.com/dmitrymomot/pipebridge/core/server"
)

type Config struct {
	Server    server.Config
	WebSocket host.Config

	AppName  string `env:"APP_NAME" envDefault:"bridged"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}
