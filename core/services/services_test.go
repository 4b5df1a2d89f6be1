package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/services"
)

type clock struct{ name string }

type counter struct{ n int }

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	r := services.New()
	services.Singleton(r, &clock{name: "utc"})

	c, ok := services.Get[*clock](r)
	require.True(t, ok)
	assert.Equal(t, "utc", c.name)

	_, ok = services.Get[*counter](r)
	assert.False(t, ok)
}

func TestRegistryProvideRunsFactory(t *testing.T) {
	t.Parallel()

	r := services.New()
	calls := 0
	services.Provide(r, func() *counter {
		calls++
		return &counter{n: calls}
	})

	a, _ := services.Get[*counter](r)
	b, _ := services.Get[*counter](r)
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 2, b.n)
}

func TestRegistryScope(t *testing.T) {
	t.Parallel()

	root := services.New()
	services.Singleton(root, &clock{name: "root"})

	scope := root.Scope()
	services.Singleton(scope, &counter{n: 7})

	c, ok := services.Get[*clock](scope)
	require.True(t, ok)
	assert.Equal(t, "root", c.name)

	n, ok := services.Get[*counter](scope)
	require.True(t, ok)
	assert.Equal(t, 7, n.n)

	_, ok = services.Get[*counter](root)
	assert.False(t, ok, "parent does not see scoped providers")
}

func TestGetNilResolver(t *testing.T) {
	t.Parallel()

	_, ok := services.Get[*clock](nil)
	assert.False(t, ok)

	_, ok = services.Get[*clock](handler.NoServices)
	assert.False(t, ok)
}
