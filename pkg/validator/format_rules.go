package validator

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// formatEngine is safe for concurrent use and caches its tag parsing.
var formatEngine = playground.New()

// Email checks that the value is text holding a syntactically valid email
// address. Non-text values fail.
func Email() Rule {
	return predicate("isEmail", "must be a valid email address", "must not be an email address",
		func(v Value) bool {
			s, ok := v.Raw().(string)
			if !ok || strings.TrimSpace(s) == "" {
				return false
			}
			return formatEngine.Var(s, "email") == nil
		})
}

// URL checks that the value is an absolute URL with a scheme and host.
func URL() Rule {
	return predicate("isURL", "must be a valid URL", "must not be a URL",
		func(v Value) bool {
			s := v.String()
			if strings.TrimSpace(s) == "" {
				return false
			}

			u, err := url.ParseRequestURI(s)
			if err != nil {
				return false
			}

			// Must have a scheme and host
			return u.Scheme != "" && u.Host != ""
		})
}

// IP checks that the value is an IPv4 or IPv6 address.
func IP() Rule {
	return predicate("isIP", "must be a valid IP address", "must not be an IP address",
		func(v Value) bool {
			s := v.String()
			if strings.TrimSpace(s) == "" {
				return false
			}
			return net.ParseIP(s) != nil
		})
}

// Numeric checks that the value is a number or text that parses as one.
func Numeric() Rule {
	return predicate("isNumeric", "must be a number", "must not be a number",
		func(v Value) bool {
			if !v.IsPresent() {
				return false
			}
			_, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
			return err == nil
		})
}

// Int checks that the value is an integer or text that parses as one.
func Int() Rule {
	return predicate("isInt", "must be an integer", "must not be an integer",
		func(v Value) bool {
			if !v.IsPresent() {
				return false
			}
			_, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
			return err == nil
		})
}
