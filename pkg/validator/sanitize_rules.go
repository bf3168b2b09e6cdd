package validator

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/reqcheck/pkg/sanitizer"
)

// SanitizerFunc transforms a field value. Sanitizers run in chain order, so
// rules declared after one see its output.
type SanitizerFunc func(Value) Value

// Sanitizer is a named value transformation.
type Sanitizer struct {
	Name  string
	Apply SanitizerFunc
}

// textSanitizer applies fn to the text form of scalars and to each element of
// lists. Absent values, nil and maps pass through unchanged.
func textSanitizer(name string, fn func(string) string) Sanitizer {
	return Sanitizer{
		Name: name,
		Apply: func(v Value) Value {
			raw := v.Raw()
			if !v.IsPresent() || raw == nil {
				return v
			}
			if _, ok := raw.(map[string]any); ok {
				return v
			}
			if items, ok := listItems(raw); ok {
				out := make([]any, len(items))
				for i, item := range items {
					out[i] = fn(Present(item).String())
				}
				return Present(out)
			}
			return Present(fn(v.String()))
		},
	}
}

// Trim removes chars from both ends; an empty chars trims whitespace.
func Trim(chars string) Sanitizer { return textSanitizer("trim", sanitizer.Trim(chars)) }

// LTrim removes chars from the start; an empty chars trims whitespace.
func LTrim(chars string) Sanitizer { return textSanitizer("ltrim", sanitizer.LTrim(chars)) }

// RTrim removes chars from the end; an empty chars trims whitespace.
func RTrim(chars string) Sanitizer { return textSanitizer("rtrim", sanitizer.RTrim(chars)) }

// ToLower lower-cases the text form.
func ToLower() Sanitizer { return textSanitizer("toLowerCase", sanitizer.ToLower) }

// ToUpper upper-cases the text form.
func ToUpper() Sanitizer { return textSanitizer("toUpperCase", sanitizer.ToUpper) }

// Escape replaces HTML special characters with entities.
func Escape() Sanitizer { return textSanitizer("escape", sanitizer.Escape) }

// Unescape replaces HTML entities with the characters Escape encodes.
func Unescape() Sanitizer { return textSanitizer("unescape", sanitizer.Unescape) }

// StripLow removes ASCII control characters, keeping \n and \r when
// keepNewLines is set.
func StripLow(keepNewLines bool) Sanitizer {
	return textSanitizer("stripLow", sanitizer.StripLow(keepNewLines))
}

// Blacklist removes every character found in chars.
func Blacklist(chars string) Sanitizer { return textSanitizer("blacklist", sanitizer.Blacklist(chars)) }

// Whitelist keeps only the characters found in chars.
func Whitelist(chars string) Sanitizer { return textSanitizer("whitelist", sanitizer.Whitelist(chars)) }

// NormalizeEmail lower-cases an address and drops provider-specific
// sub-addresses and gmail dots.
func NormalizeEmail() Sanitizer { return textSanitizer("normalizeEmail", sanitizer.NormalizeEmail) }

// ToInt converts the value to an int. Values that do not parse are left as
// they are, so a following IsInt rule still reports them.
func ToInt() Sanitizer {
	return Sanitizer{Name: "toInt", Apply: func(v Value) Value {
		if !v.IsPresent() {
			return v
		}
		n, err := cast.ToIntE(strings.TrimSpace(v.String()))
		if err != nil {
			return v
		}
		return Present(n)
	}}
}

// ToFloat converts the value to a float64, leaving unparsable values alone.
func ToFloat() Sanitizer {
	return Sanitizer{Name: "toFloat", Apply: func(v Value) Value {
		if !v.IsPresent() {
			return v
		}
		f, err := cast.ToFloat64E(strings.TrimSpace(v.String()))
		if err != nil {
			return v
		}
		return Present(f)
	}}
}

// ToBoolean converts the value to a bool. In loose mode everything except
// "", "0" and "false" is true; in strict mode only "1" and "true" are.
func ToBoolean(strict bool) Sanitizer {
	return Sanitizer{Name: "toBoolean", Apply: func(v Value) Value {
		if !v.IsPresent() {
			return v
		}
		s := strings.ToLower(strings.TrimSpace(v.String()))
		if strict {
			return Present(s == "1" || s == "true")
		}
		return Present(s != "" && s != "0" && s != "false")
	}}
}

// Default replaces absent, nil and empty-string values with def.
func Default(def any) Sanitizer {
	return Sanitizer{Name: "default", Apply: func(v Value) Value {
		if !v.IsPresent() || v.Raw() == nil || v.Raw() == "" {
			return Present(def)
		}
		return v
	}}
}
