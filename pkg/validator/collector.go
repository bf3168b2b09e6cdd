package validator

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Collector accumulates validation errors for one request. Chains running
// concurrently push into the same collector, so access is serialized.
// Errors are kept in the order chains finished, not declaration order.
type Collector struct {
	mu        sync.Mutex
	errors    ValidationErrors
	sanitized map[Location]map[string]any
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) push(err ValidationError) {
	c.mu.Lock()
	c.errors = append(c.errors, err)
	c.mu.Unlock()
}

// setSanitized records a field value produced by sanitizers. Later chains on
// the same field overwrite earlier ones.
func (c *Collector) setSanitized(loc Location, field string, raw any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sanitized == nil {
		c.sanitized = make(map[Location]map[string]any)
	}
	if c.sanitized[loc] == nil {
		c.sanitized[loc] = make(map[string]any)
	}
	c.sanitized[loc][field] = raw
}

// IsEmpty reports whether no chain has failed so far.
func (c *Collector) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) == 0
}

// Array returns a snapshot of the collected errors.
func (c *Collector) Array() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.errors)
}

// Result returns an immutable snapshot of the collected errors and
// sanitized values.
func (c *Collector) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Result{errors: slices.Clone(c.errors)}
	if len(c.sanitized) > 0 {
		res.sanitized = make(map[Location]map[string]any, len(c.sanitized))
		for loc, fields := range c.sanitized {
			res.sanitized[loc] = maps.Clone(fields)
		}
	}
	return res
}

// Result is the outcome of validating one request. The zero value is a
// result with no errors.
type Result struct {
	errors    ValidationErrors
	sanitized map[Location]map[string]any
}

// IsEmpty reports whether validation passed.
func (r Result) IsEmpty() bool {
	return len(r.errors) == 0
}

// Array returns the validation errors, at most one per failed chain.
func (r Result) Array() ValidationErrors {
	return slices.Clone(r.errors)
}

// Has reports whether the field failed validation.
func (r Result) Has(field string) bool {
	return r.errors.Has(field)
}

// Mapped returns the first error per field, keyed by field name.
func (r Result) Mapped() map[string]ValidationError {
	m := make(map[string]ValidationError, len(r.errors))
	for _, e := range r.errors {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e
		}
	}
	return m
}

// Err returns the errors as a ValidationErrors error, or nil when the result
// is empty.
func (r Result) Err() error {
	if r.IsEmpty() {
		return nil
	}
	return r.Array()
}

// Sanitized returns the values sanitizers produced for fields in loc, keyed
// by field name as declared.
func (r Result) Sanitized(loc Location) map[string]any {
	return maps.Clone(r.sanitized[loc])
}

// Overlay returns a copy of values with the sanitized fields of loc written
// over it. Dotted field names are written into nested maps, which are copied
// rather than modified; paths that cross a non-map value are skipped.
func (r Result) Overlay(loc Location, values map[string]any) map[string]any {
	out := maps.Clone(values)
	fields := r.sanitized[loc]
	if len(fields) == 0 {
		return out
	}
	if out == nil {
		out = make(map[string]any, len(fields))
	}

	for _, field := range slices.Sorted(maps.Keys(fields)) {
		raw := fields[field]
		if _, ok := out[field]; ok || !strings.Contains(field, ".") {
			out[field] = raw
			continue
		}
		setPath(out, strings.Split(field, "."), raw)
	}
	return out
}

func setPath(m map[string]any, parts []string, raw any) {
	key := parts[0]
	if len(parts) == 1 {
		m[key] = raw
		return
	}

	var child map[string]any
	switch n := m[key].(type) {
	case map[string]any:
		child = maps.Clone(n)
	case nil:
		child = make(map[string]any)
	default:
		return
	}
	setPath(child, parts[1:], raw)
	m[key] = child
}
