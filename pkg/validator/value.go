package validator

import (
	"reflect"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Value is a field value extracted from a request. The raw value is kept
// exactly as the request parser produced it; presence is tracked separately so
// that an absent field and a field holding nil or "" can be told apart.
type Value struct {
	raw     any
	present bool
}

// Absent returns the marker for a field that does not exist in its source.
func Absent() Value {
	return Value{}
}

// Present wraps a raw value found in the request.
func Present(raw any) Value {
	return Value{raw: raw, present: true}
}

// Raw returns the uncoerced value. It is nil for absent fields.
func (v Value) Raw() any {
	return v.raw
}

// IsPresent reports whether the field exists in its source.
func (v Value) IsPresent() bool {
	return v.present
}

// IsText reports whether the raw value is a string.
func (v Value) IsText() bool {
	_, ok := v.raw.(string)
	return v.present && ok
}

// String coerces the value to text. Absent fields, nil and values without a
// scalar text form (maps, multi-element lists) coerce to "".
func (v Value) String() string {
	if !v.present || v.raw == nil {
		return ""
	}

	s, err := cast.ToStringE(v.raw)
	if err == nil {
		return s
	}

	// Single-element lists behave like their element, the way repeated query
	// parameters with one occurrence are usually meant.
	if items, ok := listItems(v.raw); ok && len(items) == 1 {
		return Present(items[0]).String()
	}

	return ""
}

// Len returns the length used by length predicates: the element count for
// list-typed values, otherwise the rune count of the text form.
func (v Value) Len() int {
	if !v.present || v.raw == nil {
		return 0
	}

	switch raw := v.raw.(type) {
	case string:
		return utf8.RuneCountInString(raw)
	case []byte:
		return utf8.RuneCount(raw)
	}

	if items, ok := listItems(v.raw); ok {
		return len(items)
	}

	return utf8.RuneCountInString(v.String())
}

func listItems(raw any) ([]any, bool) {
	switch items := raw.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
