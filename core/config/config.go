package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilTarget is returned when Load receives a nil pointer.
var ErrNilTarget = errors.New("config: target must be a non-nil pointer")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      = make(map[reflect.Type]any)
)

// Load populates cfg from the environment. The first call loads a .env file
// from the working directory if one exists. Each type is parsed once; later
// calls copy the cached value into cfg.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilTarget
	}

	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}
	cache[key] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache = make(map[reflect.Type]any)
}
