package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// Readiness verifies all service dependencies are functioning.
// Answers "READY" if all checks pass, 503 Service Unavailable if any fail.
func Readiness[C handler.Context](log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx C) error {
		ctx.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				ctx.SetStatus(http.StatusServiceUnavailable)
				_, werr := io.WriteString(ctx.Body(), "NOT READY")
				return werr
			}
		}

		ctx.SetStatus(http.StatusOK)
		_, err := io.WriteString(ctx.Body(), "READY")
		return err
	}
}
