package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future represents the eventual result of an asynchronous computation.
// A Future settles exactly once: it is either resolved with a value or
// rejected with an error.
type Future[T any] struct {
	result T
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// settle records the outcome. Only the first call has any effect.
func (f *Future[T]) settle(v T, err error) {
	f.once.Do(func() {
		f.result = v
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future settles and returns its value and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for the future or for ctx to be done, whichever comes first.
// The computation itself is not cancelled when ctx is done.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the future to settle with a timeout.
// If the timeout elapses first, ErrTimeout is returned.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A panic inside fn rejects the future with an error wrapping ErrPanic.
//
// Unlike a plain goroutine, the context is handed to fn untouched: fn decides
// whether to honour cancellation.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.settle(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		res, err := fn(ctx)
		f.settle(res, err)
	}()

	return f
}

// Resolve returns a future already resolved with v.
func Resolve[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.settle(v, nil)
	return f
}

// Reject returns a future already rejected with err.
// A nil err is replaced with ErrRejected so the future still counts as rejected.
func Reject[T any](err error) *Future[T] {
	if err == nil {
		err = ErrRejected
	}
	f := newFuture[T]()
	var zero T
	f.settle(zero, err)
	return f
}

// WaitAll waits for all futures to settle and returns their values in the
// order given. The first rejection encountered in that order is returned, but
// only after every future has settled.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))

	var firstErr error
	for i, future := range futures {
		res, err := future.Await()
		results[i] = res
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
