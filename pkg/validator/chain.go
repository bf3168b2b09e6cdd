package validator

import "context"

// entry is one step in a chain: a rule with its per-rule modifiers, or a
// sanitizer when sanitize is set.
type entry struct {
	rule     Rule
	negated  bool
	override *Message
	sanitize SanitizerFunc
}

// Chain is an ordered list of rules bound to one field. Chains are built with
// a ChainBuilder and are immutable afterwards, so one chain can serve any
// number of concurrent requests.
type Chain struct {
	selector  Selector
	entries   []entry
	optional  bool
	sensitive bool
}

// Field returns the field name the chain validates.
func (c *Chain) Field() string {
	return c.selector.Field
}

// Location returns the declared source; empty for Check chains.
func (c *Chain) Location() Location {
	return c.selector.Location
}

// Len returns the number of rules in the chain. Sanitizers are not counted.
func (c *Chain) Len() int {
	n := 0
	for _, e := range c.entries {
		if e.sanitize == nil {
			n++
		}
	}
	return n
}

// Evaluate runs the chain in declaration order against the field value and
// returns the first failure, or nil if every rule passed. Rules after the
// first failure are not run.
func (c *Chain) Evaluate(ctx context.Context, req *Request) *ValidationError {
	return c.run(ctx, req).err
}

// chainOutcome is what one chain run produced: its failure, if any, and the
// field value after sanitizers when at least one ran.
type chainOutcome struct {
	err       *ValidationError
	loc       Location
	value     Value
	sanitized bool
}

func (c *Chain) run(ctx context.Context, req *Request) chainOutcome {
	if len(c.entries) == 0 {
		return chainOutcome{}
	}

	value, loc := c.selector.Select(req)
	if c.optional && !value.IsPresent() {
		return chainOutcome{}
	}

	res := chainOutcome{loc: loc}
	meta := Meta{Field: c.selector.Field, Location: loc, Request: req}
	for _, e := range c.entries {
		if e.sanitize != nil {
			value = e.sanitize(value)
			res.value, res.sanitized = value, true
			continue
		}

		out := e.rule.Check(ctx, value, meta)
		if e.negated {
			out = negate(out, e.rule)
		}
		if out.Passed() {
			continue
		}

		verr := c.failure(e, out, value, loc)
		res.err = &verr
		return res
	}

	return res
}

func (c *Chain) failure(e entry, out Outcome, value Value, loc Location) ValidationError {
	msg := out.Message()
	if e.override != nil {
		msg = *e.override
	}
	if msg.Text == "" {
		msg.Text = DefaultMessage
	}

	verr := ValidationError{
		Location: loc,
		Field:    c.selector.Field,
		Message:  msg.Text,
		Code:     msg.Code,
		Rule:     e.rule.Name,
	}
	if !c.sensitive && value.IsPresent() {
		verr.Value = value.Raw()
	}
	return verr
}

// negate inverts a predicate outcome.
func negate(out Outcome, r Rule) Outcome {
	if out.Passed() {
		return Fail(r.NegatedMessage)
	}
	return Pass()
}
