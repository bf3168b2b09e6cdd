package sanitizer

import "strings"

var (
	gmailDomains   = []string{"gmail.com", "googlemail.com"}
	subaddressTags = map[string]string{
		"gmail.com":      "+",
		"googlemail.com": "+",
		"outlook.com":    "+",
		"hotmail.com":    "+",
		"live.com":       "+",
		"icloud.com":     "+",
		"me.com":         "+",
		"yahoo.com":      "-",
	}
)

// NormalizeEmail lower-cases an address, strips provider sub-addresses
// ("john+news@gmail.com"), drops dots from Gmail local parts and maps
// googlemail.com to gmail.com. Strings that are not user@domain are only
// trimmed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := strings.ToLower(email[:at]), strings.ToLower(email[at+1:])

	if sep, ok := subaddressTags[domain]; ok {
		if i := strings.Index(local, sep); i > 0 {
			local = local[:i]
		}
	}

	for _, d := range gmailDomains {
		if domain == d {
			local = strings.ReplaceAll(local, ".", "")
			domain = "gmail.com"
			break
		}
	}

	return local + "@" + domain
}
