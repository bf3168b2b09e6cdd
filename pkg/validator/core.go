package validator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultMessage is used when a failing rule has no message of its own and
// the chain declares no override.
const DefaultMessage = "Invalid value"

// Message is a failure message with an optional caller-defined error code.
// It implements error, so custom validators can return it to attach a code.
type Message struct {
	Text string
	Code int
}

func (m Message) Error() string {
	return m.Text
}

// Outcome is the normalized result of running one rule: pass, or fail with a
// message. Built-in predicates and every flavour of custom validator are
// reduced to an Outcome before the chain looks at them.
type Outcome struct {
	passed  bool
	message Message
}

// Pass returns a passing outcome.
func Pass() Outcome {
	return Outcome{passed: true}
}

// Fail returns a failing outcome. An empty text means "no opinion on the
// message" and lets the chain fall back to DefaultMessage.
func Fail(text string) Outcome {
	return Outcome{message: Message{Text: text}}
}

// FailWith returns a failing outcome carrying a structured message.
func FailWith(msg Message) Outcome {
	return Outcome{message: msg}
}

func (o Outcome) Passed() bool {
	return o.passed
}

func (o Outcome) Message() Message {
	return o.message
}

// Meta gives rules access to the field being validated and to the rest of the
// request, which custom validators use for cross-field checks.
type Meta struct {
	Field    string
	Location Location
	Request  *Request
}

// CheckFunc evaluates a rule against a value.
type CheckFunc func(ctx context.Context, value Value, meta Meta) Outcome

// Rule is a single check. Rules are immutable and safe to share between
// chains and requests.
type Rule struct {
	// Name identifies the rule in logs and configuration errors.
	Name  string
	Check CheckFunc
	// Message is the intrinsic failure message.
	Message string
	// NegatedMessage is used when the rule is negated and the value passes.
	NegatedMessage string
	// Custom marks caller-supplied validators. They report failure by
	// returning an error or rejecting, so they cannot be negated.
	Custom bool
}

// predicate builds a rule from a pure boolean function.
func predicate(name, message, negated string, fn func(Value) bool) Rule {
	return Rule{
		Name:           name,
		Message:        message,
		NegatedMessage: negated,
		Check: func(_ context.Context, v Value, _ Meta) Outcome {
			if fn(v) {
				return Pass()
			}
			return Fail(message)
		},
	}
}

// ValidationError describes one failed chain.
type ValidationError struct {
	Location Location `json:"location"`
	Field    string   `json:"field"`
	Value    any      `json:"value,omitempty"`
	Message  string   `json:"message"`
	Code     int      `json:"errorCode,omitempty"`
	// Rule is the name of the rule that failed.
	Rule string `json:"-"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the report of one validation run, in the order chains
// finished.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error belongs to field.
func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Get returns the messages reported for field.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Fields lists the failed fields once each, in report order.
func (ve ValidationErrors) Fields() []string {
	out := make([]string, 0, len(ve))
	for _, e := range ve {
		if !slices.Contains(out, e.Field) {
			out = append(out, e.Field)
		}
	}
	return out
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
