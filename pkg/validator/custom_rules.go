package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/reqcheck/pkg/async"
)

// CustomFunc reports failure by returning an error. The error text becomes the
// failure message; a returned Message also carries its code.
type CustomFunc func(ctx context.Context, value Value, meta Meta) error

// CustomBoolFunc reports failure by returning false.
type CustomBoolFunc func(ctx context.Context, value Value, meta Meta) bool

// CustomAsyncFunc reports failure by rejecting the returned future or by
// resolving it to false. A nil future counts as success.
type CustomAsyncFunc func(ctx context.Context, value Value, meta Meta) *async.Future[bool]

// Custom adapts a throwing-style validator. A panic inside fn is treated like
// a returned error.
func Custom(fn CustomFunc) (Rule, error) {
	if fn == nil {
		return Rule{}, ErrNilValidator
	}

	return Rule{
		Name:   "custom",
		Custom: true,
		Check: func(ctx context.Context, v Value, meta Meta) (out Outcome) {
			defer recoverInto(&out)

			if err := fn(ctx, v, meta); err != nil {
				return failFromError(err)
			}
			return Pass()
		},
	}, nil
}

// CustomBool adapts a predicate-style validator.
func CustomBool(fn CustomBoolFunc) (Rule, error) {
	if fn == nil {
		return Rule{}, ErrNilValidator
	}

	return Rule{
		Name:   "custom",
		Custom: true,
		Check: func(ctx context.Context, v Value, meta Meta) (out Outcome) {
			defer recoverInto(&out)

			if fn(ctx, v, meta) {
				return Pass()
			}
			return Fail("")
		},
	}, nil
}

// CustomAsync adapts an asynchronous validator. The chain suspends until the
// future settles; other chains keep running meanwhile.
func CustomAsync(fn CustomAsyncFunc) (Rule, error) {
	if fn == nil {
		return Rule{}, ErrNilValidator
	}

	return Rule{
		Name:   "customAsync",
		Custom: true,
		Check: func(ctx context.Context, v Value, meta Meta) (out Outcome) {
			defer recoverInto(&out)

			future := fn(ctx, v, meta)
			if future == nil {
				return Pass()
			}

			ok, err := future.Await()
			switch {
			case errors.Is(err, async.ErrRejected):
				// Rejected without a reason of its own.
				return Fail("")
			case err != nil:
				return failFromError(err)
			case !ok:
				return Fail("")
			}
			return Pass()
		},
	}, nil
}

func failFromError(err error) Outcome {
	var msg Message
	if errors.As(err, &msg) {
		return FailWith(msg)
	}
	return Fail(err.Error())
}

func recoverInto(out *Outcome) {
	if r := recover(); r != nil {
		*out = Fail(panicText(r))
	}
}

func panicText(r any) string {
	switch v := r.(type) {
	case error:
		if msg := (Message{}); errors.As(v, &msg) {
			return msg.Text
		}
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
