package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/reqcheck/pkg/clientip"
)

// maxKeyLength caps key size; longer composite keys are hashed.
const maxKeyLength = 64

// KeyFunc extracts the bucket key from a request. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ByIP keys requests by client address, preferring the one stored by
// clientip.Middleware.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return "ip:" + ip
		}
		if ip := clientip.FromRequest(r); ip != "" {
			return "ip:" + ip
		}
		return ""
	}
}

// Global puts every request in the same bucket.
func Global() KeyFunc {
	return func(*http.Request) string { return "global" }
}

// Composite joins the non-empty keys of several functions with ":". Keys
// longer than 64 characters are replaced by 32 hex chars of their SHA-256.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}
