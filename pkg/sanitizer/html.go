package sanitizer

import (
	"html"
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

var unescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&#x27;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&#x2F;", "/",
	"&#x5C;", `\`,
	"&#96;", "`",
	"&amp;", "&",
)

// Escape replaces & " ' < > / \ and ` with HTML entities.
func Escape(s string) string { return escaper.Replace(s) }

// Unescape reverses Escape. &amp; is replaced last so "&amp;lt;" becomes "&lt;".
func Unescape(s string) string { return unescaper.Replace(s) }

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes tags and decodes entities in what remains.
func StripHTML(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}
