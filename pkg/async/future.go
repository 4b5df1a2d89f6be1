package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned by AwaitWithTimeout when the future is not settled in time.
	ErrTimeout = errors.New("async: timeout waiting for future")

	// ErrNilFuture is returned when awaiting a nil future.
	ErrNilFuture = errors.New("async: nil future")
)

// Future is the result of an operation that completes later.
// It is settled at most once, either with a value or with an error.
type Future[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	val     T
	err     error
	settled bool
	thens   []func(T, error)
}

// New returns an unsettled future. The producer settles it with Resolve or Reject.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already settled with v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Resolve(v)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := New[T]()
	f.Reject(err)
	return f
}

// Resolve settles the future with v. Returns false if it was already settled.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(v, nil)
}

// Reject settles the future with err. Returns false if it was already settled.
func (f *Future[T]) Reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(v T, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.val, f.err = v, err
	thens := f.thens
	f.thens = nil
	close(f.done)
	f.mu.Unlock()

	// Continuations run on the settling goroutine, outside the lock.
	for _, fn := range thens {
		fn(v, err)
	}
	return true
}

// Then registers fn to run once the future settles.
// If the future is already settled, fn runs immediately on the caller's goroutine.
func (f *Future[T]) Then(fn func(T, error)) {
	f.mu.Lock()
	if !f.settled {
		f.thens = append(f.thens, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.val, f.err
	f.mu.Unlock()
	fn(v, err)
}

// Await blocks until the future settles or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if f == nil {
		return zero, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the future with a timeout.
// Returns ErrTimeout if the future is not settled before the timeout.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	var zero T
	if f == nil {
		return zero, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-time.After(timeout):
		return zero, ErrTimeout
	}
}

// Done returns a channel closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the future is settled without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
