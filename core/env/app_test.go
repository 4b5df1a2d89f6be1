package env_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/chain"
	"github.com/dmitrymomot/pipebridge/core/env"
)

func appendTag(in, out string) env.Middleware {
	return func(next env.AppFunc) env.AppFunc {
		return func(e env.Environment) error {
			s, _ := env.Lookup[string](e, "tags")
			_ = e.Set("tags", s+in)
			err := next(e)
			s, _ = env.Lookup[string](e, "tags")
			_ = e.Set("tags", s+out)
			return err
		}
	}
}

func TestBuildRegistrationOrder(t *testing.T) {
	t.Parallel()

	app, err := env.Build(env.NotFound, func(add env.AddFunc) {
		add(appendTag("a", "A"))
		add(appendTag("b", "B"))
		add(appendTag("c", "C"))
	})
	require.NoError(t, err)

	m := env.Map{}
	require.NoError(t, app(m))
	assert.Equal(t, "abcCBA", m["tags"])
	assert.Equal(t, http.StatusNotFound, m[env.KeyResponseStatusCode])
}

func TestBuildWithoutMiddleware(t *testing.T) {
	t.Parallel()

	app, err := env.Build(env.NotFound, nil)
	require.NoError(t, err)

	m := env.Map{}
	require.NoError(t, app(m))
	assert.Equal(t, http.StatusNotFound, m[env.KeyResponseStatusCode])
}

func TestInline(t *testing.T) {
	t.Parallel()

	var order []string
	app, err := env.Compose(
		func(e env.Environment) error {
			order = append(order, "terminal")
			return nil
		},
		env.Inline(func(e env.Environment, next func() error) error {
			order = append(order, "before")
			err := next()
			order = append(order, "after")
			return err
		}),
	)
	require.NoError(t, err)
	require.NoError(t, app(env.Map{}))
	assert.Equal(t, []string{"before", "terminal", "after"}, order)
}

func TestInlineShortCircuit(t *testing.T) {
	t.Parallel()

	reached := false
	app, err := env.Compose(
		func(env.Environment) error {
			reached = true
			return nil
		},
		env.Inline(func(e env.Environment, next func() error) error {
			return e.Set(env.KeyResponseStatusCode, http.StatusForbidden)
		}),
	)
	require.NoError(t, err)

	m := env.Map{}
	require.NoError(t, app(m))
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, m[env.KeyResponseStatusCode])
}

func TestComposeRejectsNilMiddleware(t *testing.T) {
	t.Parallel()

	_, err := env.Compose(env.NotFound, appendTag("a", "A"), nil)
	assert.ErrorIs(t, err, chain.ErrNilDecorator)

	_, err = env.Compose(nil)
	assert.ErrorIs(t, err, chain.ErrNilTerminal)
}

func TestErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	app, err := env.Compose(func(env.Environment) error { return boom }, appendTag("a", "A"))
	require.NoError(t, err)

	m := env.Map{}
	assert.ErrorIs(t, app(m), boom)
	assert.Equal(t, "aA", m["tags"])
}
