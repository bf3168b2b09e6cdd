package validator

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Exists checks that the field is present in its source.
func Exists() Rule {
	return predicate("exists", "field is required", "field must not be present",
		func(v Value) bool {
			return v.IsPresent()
		})
}

// NotEmpty checks that the text form of the value is not blank.
func NotEmpty() Rule {
	return predicate("notEmpty", "must not be empty", "must be empty",
		func(v Value) bool {
			return strings.TrimSpace(v.String()) != ""
		})
}

// LengthOptions configures Length. A zero Max means no upper bound.
type LengthOptions struct {
	Min int
	Max int
}

// Length checks the value length against inclusive bounds. Absent values have
// length 0; lists are measured by element count.
func Length(opts LengthOptions) (Rule, error) {
	if opts.Min < 0 || opts.Max < 0 {
		return Rule{}, fmt.Errorf("%w: bounds must not be negative", ErrInvalidLength)
	}
	if opts.Max > 0 && opts.Min > opts.Max {
		return Rule{}, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidLength, opts.Min, opts.Max)
	}

	var message string
	switch {
	case opts.Max == 0:
		message = fmt.Sprintf("must be at least %d characters long", opts.Min)
	case opts.Min == opts.Max:
		message = fmt.Sprintf("must be exactly %d characters long", opts.Min)
	case opts.Min == 0:
		message = fmt.Sprintf("must be at most %d characters long", opts.Max)
	default:
		message = fmt.Sprintf("must be between %d and %d characters long", opts.Min, opts.Max)
	}

	return predicate("isLength", message, "must not satisfy the length constraint",
		func(v Value) bool {
			n := v.Len()
			if n < opts.Min {
				return false
			}
			return opts.Max == 0 || n <= opts.Max
		}), nil
}

// Equals checks that the text form of the value equals the text form of want.
func Equals(want any) (Rule, error) {
	s, err := cast.ToStringE(want)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidComparison, err)
	}

	return predicate("equals",
		fmt.Sprintf("must be equal to %s", s),
		fmt.Sprintf("must not be equal to %s", s),
		func(v Value) bool {
			return v.IsPresent() && v.String() == s
		}), nil
}
