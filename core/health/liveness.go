package health

import (
	"io"
	"net/http"

	"github.com/dmitrymomot/pipebridge/core/handler"
)

// Liveness indicates if the service process is running.
// Always answers "ALIVE" with 200 OK. No dependency checks.
func Liveness[C handler.Context](ctx C) error {
	ctx.SetStatus(http.StatusOK)
	ctx.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := io.WriteString(ctx.Body(), "ALIVE")
	return err
}

// NoContent answers 204 without a body. Ideal for high-frequency checks.
func NoContent[C handler.Context](ctx C) error {
	ctx.SetStatus(http.StatusNoContent)
	return nil
}
