package chain_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipebridge/core/chain"
)

type handler func(log *[]string) error

func tag(in, out string) chain.Decorator[handler] {
	return func(next handler) handler {
		return func(log *[]string) error {
			*log = append(*log, in)
			err := next(log)
			*log = append(*log, out)
			return err
		}
	}
}

func terminal(log *[]string) error {
	*log = append(*log, "T")
	return nil
}

func TestComposeOrdering(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d decorators", n), func(t *testing.T) {
			t.Parallel()

			ds := make([]chain.Decorator[handler], 0, n)
			expected := make([]string, 0, 2*n+1)
			for i := range n {
				ds = append(ds, tag(fmt.Sprintf("in%d", i), fmt.Sprintf("out%d", i)))
				expected = append(expected, fmt.Sprintf("in%d", i))
			}
			expected = append(expected, "T")
			for i := n - 1; i >= 0; i-- {
				expected = append(expected, fmt.Sprintf("out%d", i))
			}

			h, err := chain.Compose[handler](terminal, ds...)
			require.NoError(t, err)

			var log []string
			require.NoError(t, h(&log))
			assert.Equal(t, expected, log)
		})
	}
}

func TestComposeShortCircuit(t *testing.T) {
	t.Parallel()

	stop := func(next handler) handler {
		return func(log *[]string) error {
			*log = append(*log, "stop")
			return nil
		}
	}

	for pos := range 4 {
		t.Run(fmt.Sprintf("position %d", pos), func(t *testing.T) {
			t.Parallel()

			ds := []chain.Decorator[handler]{tag("a", "A"), tag("b", "B"), tag("c", "C")}
			ds = append(ds[:pos], append([]chain.Decorator[handler]{stop}, ds[pos:]...)...)

			h := chain.MustCompose[handler](terminal, ds...)
			var log []string
			require.NoError(t, h(&log))

			assert.NotContains(t, log, "T")
			assert.Contains(t, log, "stop")
			// Only decorators registered before the short-circuit ran.
			assert.Len(t, log, 2*pos+1)
		})
	}
}

func TestComposeErrorUnwindsEveryFrame(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := func(log *[]string) error {
		*log = append(*log, "T")
		return boom
	}

	h := chain.MustCompose[handler](failing, tag("a", "A"), tag("b", "B"))
	var log []string
	err := h(&log)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "T", "B", "A"}, log)
}

func TestComposePanicUnwinds(t *testing.T) {
	t.Parallel()

	deferred := func(name string) chain.Decorator[handler] {
		return func(next handler) handler {
			return func(log *[]string) error {
				defer func() { *log = append(*log, name) }()
				return next(log)
			}
		}
	}
	panicking := func(log *[]string) error { panic("kaboom") }

	h := chain.MustCompose[handler](panicking, deferred("A"), deferred("B"))
	var log []string
	assert.PanicsWithValue(t, "kaboom", func() { _ = h(&log) })
	assert.Equal(t, []string{"B", "A"}, log)
}

func TestComposeValidation(t *testing.T) {
	t.Parallel()

	t.Run("nil terminal", func(t *testing.T) {
		t.Parallel()
		_, err := chain.Compose[handler](nil, tag("a", "A"))
		assert.ErrorIs(t, err, chain.ErrNilTerminal)
	})

	t.Run("nil decorator", func(t *testing.T) {
		t.Parallel()
		_, err := chain.Compose[handler](terminal, tag("a", "A"), nil)
		assert.ErrorIs(t, err, chain.ErrNilDecorator)
	})

	t.Run("decorator returning nil", func(t *testing.T) {
		t.Parallel()
		broken := func(next handler) handler { return nil }
		_, err := chain.Compose[handler](terminal, broken)
		assert.ErrorIs(t, err, chain.ErrNilDecorator)
	})

	t.Run("must compose panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { chain.MustCompose[handler](nil) })
	})
}

func TestComposedChainConcurrentReuse(t *testing.T) {
	t.Parallel()

	h := chain.MustCompose[handler](terminal, tag("a", "A"), tag("b", "B"))

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var log []string
			assert.NoError(t, h(&log))
			assert.Equal(t, []string{"a", "b", "T", "B", "A"}, log)
		}()
	}
	wg.Wait()
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("add appends in call order", func(t *testing.T) {
		t.Parallel()

		b := chain.NewBuilder[handler](tag("a", "A"))
		register := func(add func(chain.Decorator[handler])) {
			add(tag("b", "B"))
			add(tag("c", "C"))
		}
		register(b.Add)
		assert.Equal(t, 3, b.Len())

		h, err := b.Build(terminal)
		require.NoError(t, err)

		var log []string
		require.NoError(t, h(&log))
		assert.Equal(t, []string{"a", "b", "c", "T", "C", "B", "A"}, log)
	})

	t.Run("frozen after build", func(t *testing.T) {
		t.Parallel()

		b := chain.NewBuilder[handler]()
		_, err := b.Build(terminal)
		require.NoError(t, err)

		b.Use(tag("late", "LATE"))
		_, err = b.Build(terminal)
		assert.ErrorIs(t, err, chain.ErrBuilderFrozen)
	})

	t.Run("nil decorator fails build", func(t *testing.T) {
		t.Parallel()

		b := chain.NewBuilder[handler]()
		b.Use(nil)
		assert.Equal(t, 0, b.Len())
		_, err := b.Build(terminal)
		assert.ErrorIs(t, err, chain.ErrNilDecorator)
	})

	t.Run("empty builder is the terminal", func(t *testing.T) {
		t.Parallel()

		h, err := chain.NewBuilder[handler]().Build(terminal)
		require.NoError(t, err)
		var log []string
		require.NoError(t, h(&log))
		assert.Equal(t, []string{"T"}, log)
	})
}
