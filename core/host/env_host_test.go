package host_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/host"
	"github.com/dmitrymomot/pipebridge/core/services"
)

func TestEnvHostDefaultNotFound(t *testing.T) {
	t.Parallel()

	w := serve(host.NewEnv(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnvHostPublishesRequest(t *testing.T) {
	t.Parallel()

	h := host.NewEnv()
	h.Run(func(e env.Environment) error {
		method, _ := env.Lookup[string](e, env.KeyRequestMethod)
		path, _ := env.Lookup[string](e, env.KeyRequestPath)
		query, _ := env.Lookup[string](e, env.KeyRequestQueryString)
		version, _ := env.Lookup[string](e, env.KeyVersion)
		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/items", path)
		assert.Equal(t, "id=7", query)
		assert.Equal(t, env.Version, version)

		_, ok := e.Get(env.KeyUpgradeAccept)
		assert.False(t, ok)
		_, ok = e.Get(env.KeyUpgradeAcceptFuture)
		assert.False(t, ok)
		return nil
	})

	w := serve(h, httptest.NewRequest(http.MethodPut, "/items?id=7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnvHostResponseKeys(t *testing.T) {
	t.Parallel()

	h := host.NewEnv()
	h.Use(func(next env.AppFunc) env.AppFunc {
		return func(e env.Environment) error {
			if err := e.Set(env.KeyResponseStatusCode, http.StatusCreated); err != nil {
				return err
			}
			return next(e)
		}
	})
	h.Run(func(e env.Environment) error {
		headers, ok := env.Lookup[http.Header](e, env.KeyResponseHeaders)
		require.True(t, ok)
		headers.Set("X-Env", "yes")

		body, ok := env.Lookup[io.Writer](e, env.KeyResponseBody)
		require.True(t, ok)
		_, err := io.WriteString(body, "hello")
		return err
	})

	w := serve(h, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Env"))
	assert.Equal(t, "hello", w.Body.String())
}

func TestEnvHostErrors(t *testing.T) {
	t.Parallel()

	t.Run("default handler", func(t *testing.T) {
		t.Parallel()

		h := host.NewEnv()
		h.Run(func(env.Environment) error { return statusErr{http.StatusConflict} })

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()

		var captured error
		h := host.NewEnv(host.WithEnvErrorHandler(func(e env.Environment, err error) {
			captured = err
			_ = e.Set(env.KeyResponseStatusCode, http.StatusBadGateway)
		}))
		h.Run(func(env.Environment) error { panic(errors.New("down")) })

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var pe host.PanicError
		require.ErrorAs(t, captured, &pe)
		assert.EqualError(t, errors.Unwrap(captured), "down")
	})
}

func TestEnvHostServices(t *testing.T) {
	t.Parallel()

	reg := services.New()
	services.Singleton(reg, &greeter{name: "env"})

	h := host.NewEnv(host.WithEnvServices(reg))
	h.Run(func(e env.Environment) error {
		r, ok := env.Lookup[handler.ServiceResolver](e, env.KeyServerServices)
		require.True(t, ok)
		g, ok := services.Get[*greeter](r)
		require.True(t, ok)
		assert.Equal(t, "env", g.name)
		return nil
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnvHostNilMiddlewarePanics(t *testing.T) {
	t.Parallel()

	h := host.NewEnv(host.WithEnvMiddleware(nil))

	assert.Panics(t, func() {
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
