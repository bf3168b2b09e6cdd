// Package sanitizer provides string sanitizers for user input. Each one is a
// plain func(string) string, or returns one, so they compose with Compose and
// plug into validation chains.
//
//	clean := sanitizer.Compose(sanitizer.Trim(""), sanitizer.StripLow(false), sanitizer.Escape)
//	safe := clean("  <b>hi</b>\x00 ") // "&lt;b&gt;hi&lt;&#x2F;b&gt;"
//
// NormalizeEmail canonicalizes addresses the way most providers treat them:
// lower-cased, with Gmail dots and sub-addresses removed.
package sanitizer
