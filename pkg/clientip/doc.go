// Package clientip resolves the address of the client behind an HTTP request.
//
// FromRequest looks at proxy headers before falling back to RemoteAddr:
// CF-Connecting-IP, the first valid X-Forwarded-For entry, X-Real-IP.
// Invalid values are skipped. Only deploy behind proxies that overwrite these
// headers, since clients can set them freely otherwise.
//
// Middleware resolves the address once per request and stores it in the
// context:
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
//
// LogExtractor adds the stored address to every slog record written with the
// request context.
package clientip
