package validator

import (
	"slices"
	"strings"
)

// ChainBuilder declares a Chain fluently:
//
//	validator.Body("password").
//	    Not().In("123", "password", "god").WithMessage("Do not use a common word as the password").
//	    Length(validator.LengthOptions{Min: 5}).WithMessage("must be at least 5 chars long").
//	    Matches(`\d`).WithCodedMessage("must contain a number", 1).
//	    MustBuild()
//
// Not applies to exactly the next rule appended. WithMessage and
// WithCodedMessage apply to the most recent rule; sanitizers declared in
// between are skipped over.
//
// The first configuration problem is recorded when the offending call is made
// and every later call becomes a no-op; Build returns it as a *ConfigError.
type ChainBuilder struct {
	selector        Selector
	entries         []entry
	optional        bool
	sensitive       bool
	pendingNegation bool
	last            int
	err             error
}

// Body starts a chain over a body field. Dotted paths reach nested values.
func Body(field string) *ChainBuilder {
	return newBuilder(LocationBody, field)
}

// Query starts a chain over a query string field.
func Query(field string) *ChainBuilder {
	return newBuilder(LocationQuery, field)
}

// Param starts a chain over a path parameter.
func Param(field string) *ChainBuilder {
	return newBuilder(LocationParams, field)
}

// Header starts a chain over a request header (case-insensitive).
func Header(field string) *ChainBuilder {
	return newBuilder(LocationHeaders, field)
}

// Check starts a chain over a field looked up in body, headers, params and
// query, in that order.
func Check(field string) *ChainBuilder {
	return newBuilder("", field)
}

func newBuilder(loc Location, field string) *ChainBuilder {
	b := &ChainBuilder{
		selector: Selector{Location: loc, Field: field},
		last:     -1,
	}
	if strings.TrimSpace(field) == "" {
		b.fail("", ErrEmptyField)
	}
	return b
}

func (b *ChainBuilder) fail(rule string, err error) *ChainBuilder {
	if b.err == nil {
		b.err = &ConfigError{
			Location: b.selector.Location,
			Field:    b.selector.Field,
			Rule:     rule,
			Err:      err,
		}
	}
	return b
}

// Not negates the next rule. Repeated calls before a rule still negate it
// once.
// Only predicates can be negated; negating a custom validator is a
// configuration error.
func (b *ChainBuilder) Not() *ChainBuilder {
	b.pendingNegation = true
	return b
}

// Use appends an arbitrary rule.
func (b *ChainBuilder) Use(rule Rule) *ChainBuilder {
	if b.err != nil {
		return b
	}
	if rule.Check == nil {
		return b.fail(rule.Name, ErrNilValidator)
	}
	if b.pendingNegation && rule.Custom {
		return b.fail(rule.Name, ErrNegatedCustom)
	}

	b.entries = append(b.entries, entry{rule: rule, negated: b.pendingNegation})
	b.pendingNegation = false
	b.last = len(b.entries) - 1
	return b
}

// Sanitize appends a sanitizer. Its output replaces the value for the rest of
// the chain and is reported in the Result.
func (b *ChainBuilder) Sanitize(s Sanitizer) *ChainBuilder {
	if b.err != nil {
		return b
	}
	if s.Apply == nil {
		return b.fail(s.Name, ErrNilSanitizer)
	}
	if b.pendingNegation {
		return b.fail(s.Name, ErrNegatedSanitizer)
	}

	b.entries = append(b.entries, entry{sanitize: s.Apply})
	return b
}

func (b *ChainBuilder) use(name string, rule Rule, err error) *ChainBuilder {
	if err != nil {
		return b.fail(name, err)
	}
	return b.Use(rule)
}

// WithMessage overrides the failure message of the preceding rule.
func (b *ChainBuilder) WithMessage(text string) *ChainBuilder {
	return b.WithCodedMessage(text, 0)
}

// WithCodedMessage overrides the failure message of the preceding rule and
// attaches a caller-defined error code.
func (b *ChainBuilder) WithCodedMessage(text string, code int) *ChainBuilder {
	if b.err != nil {
		return b
	}
	if b.last < 0 {
		return b.fail("withMessage", ErrMessageWithoutRule)
	}
	b.entries[b.last].override = &Message{Text: text, Code: code}
	return b
}

// Optional makes the chain pass without running any rule when the field is
// absent.
func (b *ChainBuilder) Optional() *ChainBuilder {
	b.optional = true
	return b
}

// Sensitive keeps the failing value out of validation errors.
func (b *ChainBuilder) Sensitive() *ChainBuilder {
	b.sensitive = true
	return b
}

// Exists appends the Exists predicate.
func (b *ChainBuilder) Exists() *ChainBuilder { return b.Use(Exists()) }

// NotEmpty appends the NotEmpty predicate.
func (b *ChainBuilder) NotEmpty() *ChainBuilder { return b.Use(NotEmpty()) }

// IsEmail appends the Email predicate.
func (b *ChainBuilder) IsEmail() *ChainBuilder { return b.Use(Email()) }

// IsURL appends the URL predicate.
func (b *ChainBuilder) IsURL() *ChainBuilder { return b.Use(URL()) }

// IsIP appends the IP predicate.
func (b *ChainBuilder) IsIP() *ChainBuilder { return b.Use(IP()) }

// IsUUID appends the UUID predicate.
func (b *ChainBuilder) IsUUID() *ChainBuilder { return b.Use(UUID()) }

// IsNumeric appends the Numeric predicate.
func (b *ChainBuilder) IsNumeric() *ChainBuilder { return b.Use(Numeric()) }

// IsInt appends the Int predicate.
func (b *ChainBuilder) IsInt() *ChainBuilder { return b.Use(Int()) }

// IsAlphanumeric appends the Alphanumeric predicate.
func (b *ChainBuilder) IsAlphanumeric() *ChainBuilder { return b.Use(Alphanumeric()) }

// Length appends a length predicate. See LengthOptions.
func (b *ChainBuilder) Length(opts LengthOptions) *ChainBuilder {
	rule, err := Length(opts)
	return b.use("isLength", rule, err)
}

// Matches appends a regular expression predicate.
func (b *ChainBuilder) Matches(pattern string) *ChainBuilder {
	rule, err := Matches(pattern)
	return b.use("matches", rule, err)
}

// In appends a set membership predicate.
func (b *ChainBuilder) In(set ...any) *ChainBuilder {
	rule, err := In(set...)
	return b.use("isIn", rule, err)
}

// Equals appends an equality predicate.
func (b *ChainBuilder) Equals(want any) *ChainBuilder {
	rule, err := Equals(want)
	return b.use("equals", rule, err)
}

// Satisfies appends a boolean expression predicate.
func (b *ChainBuilder) Satisfies(expression string) *ChainBuilder {
	rule, err := Satisfies(expression)
	return b.use("satisfies", rule, err)
}

// Custom appends a throwing-style custom validator.
func (b *ChainBuilder) Custom(fn CustomFunc) *ChainBuilder {
	rule, err := Custom(fn)
	return b.use("custom", rule, err)
}

// CustomBool appends a predicate-style custom validator.
func (b *ChainBuilder) CustomBool(fn CustomBoolFunc) *ChainBuilder {
	rule, err := CustomBool(fn)
	return b.use("custom", rule, err)
}

// Trim appends a sanitizer trimming surrounding whitespace.
func (b *ChainBuilder) Trim() *ChainBuilder { return b.Sanitize(Trim("")) }

// TrimChars appends a sanitizer trimming chars from both ends.
func (b *ChainBuilder) TrimChars(chars string) *ChainBuilder { return b.Sanitize(Trim(chars)) }

// ToLower appends the ToLower sanitizer.
func (b *ChainBuilder) ToLower() *ChainBuilder { return b.Sanitize(ToLower()) }

// ToUpper appends the ToUpper sanitizer.
func (b *ChainBuilder) ToUpper() *ChainBuilder { return b.Sanitize(ToUpper()) }

// Escape appends the Escape sanitizer.
func (b *ChainBuilder) Escape() *ChainBuilder { return b.Sanitize(Escape()) }

// NormalizeEmail appends the NormalizeEmail sanitizer.
func (b *ChainBuilder) NormalizeEmail() *ChainBuilder { return b.Sanitize(NormalizeEmail()) }

// ToInt appends the ToInt sanitizer.
func (b *ChainBuilder) ToInt() *ChainBuilder { return b.Sanitize(ToInt()) }

// ToFloat appends the ToFloat sanitizer.
func (b *ChainBuilder) ToFloat() *ChainBuilder { return b.Sanitize(ToFloat()) }

// ToBoolean appends the ToBoolean sanitizer.
func (b *ChainBuilder) ToBoolean(strict bool) *ChainBuilder { return b.Sanitize(ToBoolean(strict)) }

// Default appends the Default sanitizer.
func (b *ChainBuilder) Default(def any) *ChainBuilder { return b.Sanitize(Default(def)) }

// CustomSanitizer appends an arbitrary value transformation.
func (b *ChainBuilder) CustomSanitizer(fn SanitizerFunc) *ChainBuilder {
	return b.Sanitize(Sanitizer{Name: "customSanitizer", Apply: fn})
}

// CustomAsync appends an asynchronous custom validator.
func (b *ChainBuilder) CustomAsync(fn CustomAsyncFunc) *ChainBuilder {
	rule, err := CustomAsync(fn)
	return b.use("customAsync", rule, err)
}

// Build returns the immutable chain, or the first configuration error.
func (b *ChainBuilder) Build() (*Chain, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.pendingNegation {
		return nil, &ConfigError{
			Location: b.selector.Location,
			Field:    b.selector.Field,
			Rule:     "not",
			Err:      ErrDanglingNegation,
		}
	}

	return &Chain{
		selector:  b.selector,
		entries:   slices.Clone(b.entries),
		optional:  b.optional,
		sensitive: b.sensitive,
	}, nil
}

// MustBuild is like Build but panics on a configuration error. Use it where
// chains are declared at route registration, so a bad declaration stops the
// process from starting.
func (b *ChainBuilder) MustBuild() *Chain {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Build builds several chains, returning the first configuration error.
func Build(builders ...*ChainBuilder) ([]*Chain, error) {
	chains := make([]*Chain, 0, len(builders))
	for _, b := range builders {
		c, err := b.Build()
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}
	return chains, nil
}

// MustBuild is like Build but panics on a configuration error.
func MustBuild(builders ...*ChainBuilder) []*Chain {
	chains, err := Build(builders...)
	if err != nil {
		panic(err)
	}
	return chains
}
