package validator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

func bodyRequest(body map[string]any) *validator.Request {
	return &validator.Request{Body: body}
}

func TestEmptyChainAlwaysPasses(t *testing.T) {
	t.Parallel()

	chain := validator.Body("anything").MustBuild()
	assert.Nil(t, chain.Evaluate(context.Background(), nil))
	assert.Nil(t, chain.Evaluate(context.Background(), bodyRequest(map[string]any{"anything": 1})))
}

func TestChainStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	counter := func(context.Context, validator.Value, validator.Meta) error {
		calls.Add(1)
		return nil
	}

	chain := validator.Body("password").
		Length(validator.LengthOptions{Min: 5}).WithMessage("too short").
		Custom(counter).
		MustBuild()

	verr := chain.Evaluate(context.Background(), bodyRequest(map[string]any{"password": "abc"}))
	require.NotNil(t, verr)
	assert.Equal(t, "too short", verr.Message)
	assert.Equal(t, int32(0), calls.Load())

	assert.Nil(t, chain.Evaluate(context.Background(), bodyRequest(map[string]any{"password": "abcdef"})))
	assert.Equal(t, int32(1), calls.Load())
}

func TestNegatedMembership(t *testing.T) {
	t.Parallel()

	chain := validator.Body("password").
		Not().In("123", "password", "god").WithMessage("Do not use a common word as the password").
		MustBuild()

	for _, common := range []string{"123", "password", "god"} {
		verr := chain.Evaluate(context.Background(), bodyRequest(map[string]any{"password": common}))
		require.NotNil(t, verr, common)
		assert.Equal(t, "Do not use a common word as the password", verr.Message)
	}

	for _, fine := range []string{"s3cretpw", "Password", ""} {
		assert.Nil(t, chain.Evaluate(context.Background(), bodyRequest(map[string]any{"password": fine})), fine)
	}
}

func TestNegatedPredicateUsesNegatedMessage(t *testing.T) {
	t.Parallel()

	chain := validator.Body("code").Not().In("a", "b").MustBuild()
	verr := chain.Evaluate(context.Background(), bodyRequest(map[string]any{"code": "a"}))
	require.NotNil(t, verr)
	assert.Equal(t, "must not be one of: a, b", verr.Message)
}

func TestMessagePrecedence(t *testing.T) {
	t.Parallel()

	thrower := func(context.Context, validator.Value, validator.Meta) error {
		return errors.New("thrown text")
	}
	falsy := func(context.Context, validator.Value, validator.Meta) bool { return false }
	req := bodyRequest(map[string]any{"f": "v"})

	t.Run("override wins over thrown text", func(t *testing.T) {
		t.Parallel()
		verr := validator.Body("f").Custom(thrower).WithMessage("override").MustBuild().
			Evaluate(context.Background(), req)
		require.NotNil(t, verr)
		assert.Equal(t, "override", verr.Message)
	})

	t.Run("thrown text without override", func(t *testing.T) {
		t.Parallel()
		verr := validator.Body("f").Custom(thrower).MustBuild().Evaluate(context.Background(), req)
		require.NotNil(t, verr)
		assert.Equal(t, "thrown text", verr.Message)
	})

	t.Run("default for falsy custom", func(t *testing.T) {
		t.Parallel()
		verr := validator.Body("f").CustomBool(falsy).MustBuild().Evaluate(context.Background(), req)
		require.NotNil(t, verr)
		assert.Equal(t, validator.DefaultMessage, verr.Message)
		assert.Equal(t, "Invalid value", verr.Message)
	})

	t.Run("override applies to preceding rule only", func(t *testing.T) {
		t.Parallel()
		chain := validator.Body("f").
			Exists().WithMessage("missing").
			Matches(`\d`).
			MustBuild()
		verr := chain.Evaluate(context.Background(), req)
		require.NotNil(t, verr)
		assert.Equal(t, `must match pattern \d`, verr.Message)
	})

	t.Run("coded override", func(t *testing.T) {
		t.Parallel()
		verr := validator.Body("f").Matches(`\d`).WithCodedMessage("needs a digit", 7).MustBuild().
			Evaluate(context.Background(), req)
		require.NotNil(t, verr)
		assert.Equal(t, "needs a digit", verr.Message)
		assert.Equal(t, 7, verr.Code)
	})
}

func TestErrorDescribesField(t *testing.T) {
	t.Parallel()

	verr := validator.Query("page").IsInt().MustBuild().Evaluate(context.Background(),
		&validator.Request{Query: map[string]any{"page": "two"}})
	require.NotNil(t, verr)
	assert.Equal(t, validator.LocationQuery, verr.Location)
	assert.Equal(t, "page", verr.Field)
	assert.Equal(t, "two", verr.Value)
	assert.Equal(t, "isInt", verr.Rule)
}

func TestSensitiveOmitsValue(t *testing.T) {
	t.Parallel()

	chain := validator.Body("password").Length(validator.LengthOptions{Min: 8}).Sensitive().MustBuild()
	verr := chain.Evaluate(context.Background(), bodyRequest(map[string]any{"password": "hunter2"}))
	require.NotNil(t, verr)
	assert.Nil(t, verr.Value)
}

func TestAbsentValueIsOmitted(t *testing.T) {
	t.Parallel()

	verr := validator.Body("email").IsEmail().MustBuild().Evaluate(context.Background(), bodyRequest(nil))
	require.NotNil(t, verr)
	assert.Nil(t, verr.Value)
	assert.Equal(t, "must be a valid email address", verr.Message)
}

func TestOptionalSkipsAbsentField(t *testing.T) {
	t.Parallel()

	chain := validator.Body("nickname").Optional().Length(validator.LengthOptions{Min: 3}).MustBuild()
	assert.Nil(t, chain.Evaluate(context.Background(), bodyRequest(nil)))
	assert.NotNil(t, chain.Evaluate(context.Background(), bodyRequest(map[string]any{"nickname": "x"})))
}

func TestCustomSeesWholeRequest(t *testing.T) {
	t.Parallel()

	chain := validator.Body("passwordConfirmation").
		Custom(func(_ context.Context, v validator.Value, meta validator.Meta) error {
			if v.String() != validator.Present(meta.Request.Body["password"]).String() {
				return errors.New("Password confirmation is incorrect")
			}
			return nil
		}).
		MustBuild()

	verr := chain.Evaluate(context.Background(), bodyRequest(map[string]any{
		"password":             "abc12",
		"passwordConfirmation": "abc13",
	}))
	require.NotNil(t, verr)
	assert.Equal(t, "Password confirmation is incorrect", verr.Message)

	assert.Nil(t, chain.Evaluate(context.Background(), bodyRequest(map[string]any{
		"password":             "abc12",
		"passwordConfirmation": "abc12",
	})))
}
