package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pipebridge/core/bridge"
	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/host"
	"github.com/dmitrymomot/pipebridge/middleware"
)

func TestSecurityHeadersPresets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mw    handler.Middleware[*host.Context]
		frame string
		hsts  string
	}{
		{"balanced", middleware.SecurityHeaders[*host.Context](), "SAMEORIGIN", "max-age=31536000; includeSubDomains"},
		{"strict", middleware.SecurityHeadersStrict[*host.Context](), "DENY", "max-age=63072000; includeSubDomains; preload"},
		{"relaxed", middleware.SecurityHeadersRelaxed[*host.Context](), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := host.New[*host.Context]()
			h.Use(tt.mw)

			w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, tt.frame, w.Header().Get("X-Frame-Options"))
			assert.Equal(t, tt.hsts, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecurityHeadersCustomConfiguration(t *testing.T) {
	t.Parallel()

	cfg := middleware.BalancedSecurity
	cfg.IsDevelopment = true
	cfg.CustomHeaders = map[string]string{"X-Bridge": "pipebridge"}

	h := host.New[*host.Context]()
	h.Use(middleware.SecurityHeadersWithConfig[*host.Context](cfg))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "pipebridge", w.Header().Get("X-Bridge"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersSkip(t *testing.T) {
	t.Parallel()

	cfg := middleware.StrictSecurity
	cfg.Skip = func(ctx handler.Context) bool {
		r := ctx.Request()
		return r != nil && r.URL.Path == "/health"
	}

	h := host.New[*host.Context]()
	h.Use(middleware.SecurityHeadersWithConfig[*host.Context](cfg))

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, w.Header().Get("X-Frame-Options"))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestSecurityHeadersInsideDictionaryHost(t *testing.T) {
	t.Parallel()

	h := host.NewEnv()
	h.Use(bridge.MustUseTyped(func(b *bridge.Builder[*bridge.EnvContext]) {
		b.Use(middleware.SecurityHeaders[*bridge.EnvContext]())
	}))
	h.Run(func(e env.Environment) error {
		return e.Set(env.KeyResponseStatusCode, http.StatusNoContent)
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}
