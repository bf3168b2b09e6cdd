// Package async provides a small, generic promise-like primitive.
//
// A Future represents the eventual outcome of an asynchronous computation: it
// settles once, either resolved with a value or rejected with an error. Go
// starts a function in its own goroutine and returns a Future immediately;
// Resolve and Reject build futures that are already settled, which is handy
// for validators that can answer synchronously but must satisfy an
// asynchronous signature.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) (bool, error) {
//	    taken, err := registry.Exists(ctx, email)
//	    if err != nil {
//	        return false, err
//	    }
//	    if taken {
//	        return false, errors.New("E-mail already in use")
//	    }
//	    return true, nil
//	})
//
//	ok, err := f.Await()
//
// # Error Handling
//
// Await returns whatever the function returned. A panic inside the function
// rejects the future with an error wrapping ErrPanic instead of crashing the
// process. AwaitWithTimeout returns ErrTimeout when the deadline passes first.
//
// Futures never cancel the work they wrap. Waiting can be abandoned with
// AwaitContext or AwaitWithTimeout, but the goroutine runs to completion.
package async
