package host_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/host"
	"github.com/dmitrymomot/pipebridge/core/services"
)

type statusErr struct{ code int }

func (e statusErr) Error() string   { return http.StatusText(e.code) }
func (e statusErr) StatusCode() int { return e.code }

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHostDefaultNotFound(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHostMiddlewareOrder(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	tag := func(s string) handler.Middleware[*host.Context] {
		return func(next handler.HandlerFunc[*host.Context]) handler.HandlerFunc[*host.Context] {
			return func(ctx *host.Context) error {
				_, _ = io.WriteString(ctx.Body(), s)
				return next(ctx)
			}
		}
	}
	h.Use(tag("a"), tag("b"))
	h.Run(func(ctx *host.Context) error {
		_, err := io.WriteString(ctx.Body(), "!")
		return err
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ab!", w.Body.String())
}

func TestHostStatusIsLiveUntilFirstWrite(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	h.Use(func(next handler.HandlerFunc[*host.Context]) handler.HandlerFunc[*host.Context] {
		return func(ctx *host.Context) error {
			ctx.SetStatus(http.StatusAccepted)
			return next(ctx)
		}
	})
	h.Run(func(ctx *host.Context) error {
		assert.Equal(t, http.StatusAccepted, ctx.Status())
		ctx.SetStatus(http.StatusCreated)
		ctx.Header().Set("X-Test", "1")
		_, err := io.WriteString(ctx.Body(), "created")
		ctx.SetStatus(http.StatusTeapot)
		assert.Equal(t, http.StatusCreated, ctx.Status())
		return err
	})

	w := serve(h, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Test"))
	assert.Equal(t, "created", w.Body.String())
}

func TestHostCommitsStatusWithoutBody(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	h.Run(func(ctx *host.Context) error {
		ctx.SetStatus(http.StatusNoContent)
		return nil
	})

	w := serve(h, httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHostErrors(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()

		h := host.New[*host.Context]()
		h.Run(func(*host.Context) error { return errors.New("boom") })

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "boom")
	})

	t.Run("error with status", func(t *testing.T) {
		t.Parallel()

		h := host.New[*host.Context]()
		h.Run(func(*host.Context) error { return statusErr{http.StatusForbidden} })

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("error after write keeps response", func(t *testing.T) {
		t.Parallel()

		h := host.New[*host.Context]()
		h.Run(func(ctx *host.Context) error {
			_, _ = io.WriteString(ctx.Body(), "partial")
			return errors.New("late")
		})

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestHostRecoversPanics(t *testing.T) {
	t.Parallel()

	var captured error
	h := host.New(host.WithErrorHandler[*host.Context](func(ctx *host.Context, err error) {
		captured = err
		ctx.SetStatus(http.StatusServiceUnavailable)
	}))
	h.Run(func(*host.Context) error { panic("kaboom") })

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var pe host.PanicError
	require.ErrorAs(t, captured, &pe)
	assert.Equal(t, "kaboom", pe.Value())
	assert.NotEmpty(t, pe.Stack())
}

func TestHostPlainRequestHasNoUpgrader(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	h.Run(func(ctx *host.Context) error {
		assert.Nil(t, ctx.Upgrader())
		assert.Nil(t, ctx.Negotiation())
		assert.NotNil(t, ctx.Request())
		return nil
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

type greeter struct{ name string }

func TestHostServices(t *testing.T) {
	t.Parallel()

	reg := services.New()
	services.Singleton(reg, &greeter{name: "bridge"})

	h := host.New(host.WithServices[*host.Context](reg))
	h.Run(func(ctx *host.Context) error {
		g, ok := handler.Service[*greeter](ctx)
		require.True(t, ok)
		_, err := io.WriteString(ctx.Body(), g.name)
		return err
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "bridge", w.Body.String())
}

type appContext struct {
	*host.Context
	user string
}

func TestHostContextFactory(t *testing.T) {
	t.Parallel()

	t.Run("custom context", func(t *testing.T) {
		t.Parallel()

		h := host.New(host.WithContextFactory[*appContext](func(base *host.Context) *appContext {
			return &appContext{Context: base, user: "alice"}
		}))
		h.Run(func(ctx *appContext) error {
			_, err := io.WriteString(ctx.Body(), ctx.user)
			return err
		})

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("missing factory", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, host.ErrNoContextFactory, func() {
			host.New[*appContext]()
		})
	})
}

func TestHostNilMiddlewarePanicsOnFirstRequest(t *testing.T) {
	t.Parallel()

	h := host.New[*host.Context]()
	h.Use(nil)

	assert.Panics(t, func() {
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
