package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/logger"
	"github.com/dmitrymomot/pipebridge/core/server"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	app, err := NewApp(
		WithLogger(logger.Nop()),
		WithServer(server.New("127.0.0.1:0")),
	)
	require.NoError(t, err)
	return app
}

func TestAppTypedPipeline(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/typed/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pipebridge", w.Header().Get("X-Powered-By"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "hello from bridged\n", w.Body.String())
}

func TestAppDictionaryPipeline(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/env/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pipebridge", w.Header().Get("X-Powered-By"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "hello from bridged (dictionary)\n", w.Body.String())
}

func TestAppWebSocketEcho(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/typed/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", string(msg))
}

func TestAppHealthProbes(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	for path, body := range map[string]string{"/health/live": "ALIVE", "/health/ready": "READY"} {
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, body, w.Body.String(), path)
	}
}

func TestAppEnvGreetWithoutServices(t *testing.T) {
	t.Parallel()

	assert.Error(t, envGreet(env.Map{}))
}
