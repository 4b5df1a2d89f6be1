package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pipebridge/core/bridge"
	"github.com/dmitrymomot/pipebridge/core/config"
	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/health"
	"github.com/dmitrymomot/pipebridge/core/host"
	"github.com/dmitrymomot/pipebridge/core/logger"
	"github.com/dmitrymomot/pipebridge/core/server"
	"github.com/dmitrymomot/pipebridge/core/services"
	"github.com/dmitrymomot/pipebridge/core/upgrade"
	"github.com/dmitrymomot/pipebridge/middleware"
)

// greeting is the application service shared by both pipelines.
type greeting struct {
	text string
}

// App serves a typed pipeline under /typed/ and a dictionary pipeline under
// /env/, each hosting middleware written for the other convention.
type App struct {
	config   Config
	services *services.Registry
	typed    *host.Host[*host.Context]
	dict     *host.EnvHost
	server   *server.Server
	logger   *slog.Logger
}

type AppOption func(*App) error

func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{
		config:   cfg,
		services: services.New(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	services.Singleton(app.services, &greeting{text: "hello from " + cfg.AppName})

	typed, err := app.typedHost()
	if err != nil {
		return nil, err
	}
	app.typed = typed

	dict, err := app.dictHost()
	if err != nil {
		return nil, err
	}
	app.dict = dict

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

// Handler returns the combined HTTP handler.
func (app *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/typed/", app.typed)
	mux.Handle("/env/", app.dict)
	mux.Handle("/health/live", app.probe(health.Liveness[*host.Context]))
	mux.Handle("/health/ready", app.probe(health.Readiness[*host.Context](app.logger, app.servicesReady)))
	return mux
}

func (app *App) probe(h handler.HandlerFunc[*host.Context]) http.Handler {
	p := host.New(host.WithLogger[*host.Context](app.logger))
	p.Run(h)
	return p
}

func (app *App) servicesReady(context.Context) error {
	if _, ok := services.Get[*greeting](app.services); !ok {
		return errors.New("greeting service not registered")
	}
	return nil
}

// Run serves until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.Handler()))
	return g.Wait()
}

func (app *App) typedHost() (*host.Host[*host.Context], error) {
	legacy, err := bridge.UseEnv[*host.Context](func(add env.AddFunc) {
		add(poweredBy)
		add(echoUpgrade)
	}, bridge.WithLogger[*host.Context](app.logger))
	if err != nil {
		return nil, fmt.Errorf("typed host: %w", err)
	}

	h := host.New(
		host.WithLogger[*host.Context](app.logger),
		host.WithServices[*host.Context](app.services),
		host.WithConfig[*host.Context](app.config.WebSocket),
	)
	h.Use(
		middleware.RequestID[*host.Context](),
		middleware.LoggingWithLogger[*host.Context](app.logger),
		legacy,
	)
	h.Run(greet[*host.Context])
	return h, nil
}

func (app *App) dictHost() (*host.EnvHost, error) {
	modern, err := bridge.UseTyped(func(b *bridge.Builder[*bridge.EnvContext]) {
		b.Use(
			middleware.RequestID[*bridge.EnvContext](),
			middleware.LoggingWithLogger[*bridge.EnvContext](app.logger),
			middleware.SecurityHeaders[*bridge.EnvContext](),
		)
	}, bridge.WithLogger[*bridge.EnvContext](app.logger))
	if err != nil {
		return nil, fmt.Errorf("dictionary host: %w", err)
	}

	h := host.NewEnv(
		host.WithEnvLogger(app.logger),
		host.WithEnvServices(app.services),
		host.WithEnvConfig(app.config.WebSocket),
	)
	h.Use(poweredBy, modern)
	h.Run(envGreet)
	return h, nil
}

// poweredBy is dictionary-convention middleware stamping a response header.
func poweredBy(next env.AppFunc) env.AppFunc {
	return func(e env.Environment) error {
		if h, ok := env.Lookup[http.Header](e, env.KeyResponseHeaders); ok {
			h.Set("X-Powered-By", "pipebridge")
		}
		return next(e)
	}
}

// echoUpgrade accepts websocket requests through the callback-shaped key
// and echoes every message back.
func echoUpgrade(next env.AppFunc) env.AppFunc {
	return func(e env.Environment) error {
		accept, ok := env.Lookup[upgrade.AcceptFunc](e, env.KeyUpgradeAccept)
		if !ok {
			return next(e)
		}
		return accept(nil, func(c upgrade.Conn) error {
			for {
				mt, msg, err := c.ReadMessage()
				if err != nil {
					return nil
				}
				if err := c.WriteMessage(mt, msg); err != nil {
					return err
				}
			}
		})
	}
}

func greet[C handler.Context](ctx C) error {
	g, ok := handler.Service[*greeting](ctx)
	if !ok {
		return errors.New("greeting service not registered")
	}
	_, err := io.WriteString(ctx.Body(), g.text+"\n")
	return err
}

func envGreet(e env.Environment) error {
	r, _ := env.Lookup[handler.ServiceResolver](e, env.KeyServerServices)
	g, ok := services.Get[*greeting](r)
	if !ok {
		return errors.New("greeting service not registered")
	}
	body, ok := env.Lookup[io.Writer](e, env.KeyResponseBody)
	if !ok {
		return errors.New("response body missing")
	}
	_, err := io.WriteString(body, g.text+" (dictionary)\n")
	return err
}

func newLogger(cfg Config) *slog.Logger {
	if cfg.Env == "production" {
		return logger.New(logger.WithProduction(cfg.AppName), logger.WithLevelName(cfg.LogLevel))
	}
	return logger.New(logger.WithDevelopment(cfg.AppName), logger.WithLevelName(cfg.LogLevel))
}
