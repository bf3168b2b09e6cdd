package validator

import (
	"strings"

	"github.com/google/uuid"
)

// UUID checks the canonical 36-character UUID form.
func UUID() Rule {
	return predicate("isUUID", "must be a valid UUID", "must not be a UUID",
		func(v Value) bool {
			s := v.String()
			if strings.TrimSpace(s) == "" {
				return false
			}

			// Fast rejection: check length and hyphen positions before parsing
			if len(s) != 36 {
				return false
			}
			if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
				return false
			}

			_, err := uuid.Parse(s)
			return err == nil
		})
}
