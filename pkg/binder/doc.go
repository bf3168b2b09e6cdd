// Package binder converts an *http.Request into the validator.Request that
// validation chains read from.
//
//	bind := binder.Request()
//	r.With(validator.Middleware(bind, chains)).Post("/users", create)
//
// Path parameters come from chi's route context by default. Use
// WithPathParams with other routers.
package binder
