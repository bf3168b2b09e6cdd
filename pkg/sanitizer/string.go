package sanitizer

import (
	"strings"
	"unicode"
)

// Trim returns a sanitizer removing chars from both ends. An empty chars
// trims Unicode whitespace.
func Trim(chars string) func(string) string {
	if chars == "" {
		return strings.TrimSpace
	}
	return func(s string) string { return strings.Trim(s, chars) }
}

// LTrim is Trim for the start of the string only.
func LTrim(chars string) func(string) string {
	if chars == "" {
		return func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }
	}
	return func(s string) string { return strings.TrimLeft(s, chars) }
}

// RTrim is Trim for the end of the string only.
func RTrim(chars string) func(string) string {
	if chars == "" {
		return func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
	}
	return func(s string) string { return strings.TrimRight(s, chars) }
}

func ToLower(s string) string { return strings.ToLower(s) }

func ToUpper(s string) string { return strings.ToUpper(s) }

// StripLow removes ASCII control characters. With keepNewLines, \n and \r
// survive.
func StripLow(keepNewLines bool) func(string) string {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if keepNewLines && (r == '\n' || r == '\r') {
				return r
			}
			if r < 0x20 || r == 0x7f {
				return -1
			}
			return r
		}, s)
	}
}

// Blacklist removes every character listed in chars.
func Blacklist(chars string) func(string) string {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(chars, r) {
				return -1
			}
			return r
		}, s)
	}
}

// Whitelist keeps only the characters listed in chars.
func Whitelist(chars string) func(string) string {
	return func(s string) string {
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(chars, r) {
				return r
			}
			return -1
		}, s)
	}
}

// CollapseWhitespace replaces runs of whitespace with one space and trims
// the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
