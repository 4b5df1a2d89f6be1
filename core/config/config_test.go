package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/config"
)

type defaultsConfig struct {
	Name    string        `env:"PIPEBRIDGE_TEST_NAME" envDefault:"bridge"`
	Timeout time.Duration `env:"PIPEBRIDGE_TEST_TIMEOUT" envDefault:"3s"`
}

type requiredConfig struct {
	Secret string `env:"PIPEBRIDGE_TEST_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"PIPEBRIDGE_TEST_CACHED"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "bridge", cfg.Name)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoadRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.Panics(t, func() {
		config.MustLoad(&requiredConfig{})
	})
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("PIPEBRIDGE_TEST_CACHED", "first")
	config.Reset()

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("PIPEBRIDGE_TEST_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first", first.Value)
	assert.Equal(t, first, second)
}

func TestLoadNilTarget(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilTarget)
}
