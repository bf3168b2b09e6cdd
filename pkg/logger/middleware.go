package logger

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// redactedHeaders are logged with their values masked.
var redactedHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization", "Set-Cookie"}

// Middleware logs every request when it arrives, with its headers at debug
// level, and again when the handler returns, with the response status and
// the time taken.
func Middleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			req := HTTPRequest(r.Method, r.URL.Path)
			log.DebugContext(r.Context(), "request received", req, slog.String("remote_addr", r.RemoteAddr),
				Headers(r.Header),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "request completed",
				req,
				Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				Duration(time.Since(start)),
			)
		})
	}
}

// Headers groups request headers under "headers", one attribute per header
// name with multiple values joined by ", ". Credentials are masked.
func Headers(h http.Header) slog.Attr {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	slices.Sort(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		value := strings.Join(h.Values(name), ", ")
		if slices.Contains(redactedHeaders, http.CanonicalHeaderKey(name)) {
			value = "[REDACTED]"
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
