// Command bridged serves a typed and a dictionary middleware pipeline side by
// side, each running middleware written for the other convention.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/pipebridge/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp()
	if err != nil {
		logger.New().Error("failed to initialize", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
