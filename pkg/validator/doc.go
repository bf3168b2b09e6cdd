// Package validator declares per-field validation chains for HTTP requests
// and runs them concurrently, collecting at most one error per chain.
//
// A chain selects one field from a request location (body, query, params,
// headers, or any of them) and applies an ordered list of rules. Rules are
// built-in predicates (Email, Length, Matches, In and friends) or custom
// validators in three flavours: returning an error, returning a bool, or
// returning an async.Future. Every rule is reduced to an Outcome, so the chain
// treats them the same way. Evaluation stops at the first failing rule.
//
// # Declaring chains
//
//	chains := validator.MustBuild(
//	    validator.Body("username").IsEmail(),
//	    validator.Body("password").
//	        Not().In("123", "password", "god").WithMessage("Do not use a common word as the password").
//	        Length(validator.LengthOptions{Min: 5}).WithMessage("must be at least 5 chars long").
//	        Matches(`\d`).WithMessage("must contain a number"),
//	)
//
// Not negates the next predicate only. WithMessage overrides the message of
// the rule declared just before it. A failing rule reports, in order of
// precedence, its override, the message its validator produced, or
// DefaultMessage.
//
// Declaration mistakes (a bad pattern, an empty membership set, a negated
// custom validator) are reported by Build as a *ConfigError and never reach
// request handling.
//
// # Running
//
// Runner runs chains directly. Middleware adapts them to net/http:
//
//	r.With(validator.Middleware(binder.Request(chi.URLParam), chains)).
//	    Post("/users", func(w http.ResponseWriter, r *http.Request) {
//	        if res := validator.ResultFrom(r.Context()); !res.IsEmpty() {
//	            // respond with res.Array()
//	        }
//	    })
//
// Errors are collected in the order chains finish, which may differ from the
// order they were declared in.
package validator
