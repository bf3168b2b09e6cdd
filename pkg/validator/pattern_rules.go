package validator

import (
	"fmt"
	"regexp"

	"github.com/dmitrymomot/reqcheck/pkg/cache"
)

var alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Chains are usually built per route, often with the same patterns.
var compiledPatterns = cache.NewLRU[string, *regexp.Regexp](256)

// Matches checks the text form of the value against a regular expression.
// The pattern is compiled once and shared; a malformed pattern is reported
// as ErrInvalidPattern.
func Matches(pattern string) (Rule, error) {
	re, err := compiledPatterns.GetOrLoad(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile(pattern)
	})
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	return predicate("matches",
		fmt.Sprintf("must match pattern %s", pattern),
		fmt.Sprintf("must not match pattern %s", pattern),
		func(v Value) bool {
			return re.MatchString(v.String())
		}), nil
}

// Alphanumeric checks that the value holds only ASCII letters and digits.
func Alphanumeric() Rule {
	return predicate("isAlphanumeric", "must contain only letters and numbers", "must not be alphanumeric",
		func(v Value) bool {
			return alphanumericRegex.MatchString(v.String())
		})
}
