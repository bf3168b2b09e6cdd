package validator

import (
	"errors"
	"fmt"
)

// Configuration errors. They are returned (wrapped in *ConfigError) when a
// chain is declared, never while a request is being validated.
var (
	ErrEmptyField         = errors.New("field name is empty")
	ErrInvalidLength      = errors.New("invalid length bounds")
	ErrInvalidPattern     = errors.New("invalid pattern")
	ErrEmptySet           = errors.New("membership set is empty")
	ErrInvalidSet         = errors.New("membership set holds a value without a text form")
	ErrInvalidComparison  = errors.New("comparison value has no text form")
	ErrInvalidExpression  = errors.New("invalid expression")
	ErrNilValidator       = errors.New("validator function is nil")
	ErrNegatedCustom      = errors.New("custom validators cannot be negated")
	ErrNilSanitizer       = errors.New("sanitizer function is nil")
	ErrNegatedSanitizer   = errors.New("sanitizers cannot be negated")
	ErrDanglingNegation   = errors.New("negation is not followed by a rule")
	ErrMessageWithoutRule = errors.New("message override is not preceded by a rule")
)

// ConfigError reports an invalid chain declaration.
type ConfigError struct {
	Location Location
	Field    string
	Rule     string
	Err      error
}

func (e *ConfigError) Error() string {
	loc := string(e.Location)
	if loc == "" {
		loc = "any"
	}
	if e.Rule == "" {
		return fmt.Sprintf("validator: %s field %q: %v", loc, e.Field, e.Err)
	}
	return fmt.Sprintf("validator: %s field %q: rule %s: %v", loc, e.Field, e.Rule, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
