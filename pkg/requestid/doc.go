// Package requestid assigns every HTTP request an ID, exposes it through the
// request context and adds it to log records.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
package requestid
