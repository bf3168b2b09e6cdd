// Package handler provides typed HTTP handlers on top of net/http.
//
// A HandlerFunc receives a Context and a request value bound by one or more
// Bind functions, and returns a Response. Wrap turns it into an
// http.HandlerFunc:
//
//	type signup struct {
//		Username string `json:"username"`
//		Password string `json:"password"`
//	}
//
//	register := func(ctx handler.Context, req signup) handler.Response {
//		return handler.JSON(map[string]string{"username": req.Username})
//	}
//
//	r.With(validator.Middleware(binder.Request(), chains)).
//		Post("/user1", handler.Wrap(register,
//			handler.WithBinder[handler.Context, signup](handler.BindValidated()),
//			handler.WithDecorators(handler.RequireValid[handler.Context, signup]()),
//		))
//
// Context.Validation exposes the result of the validation middlewares that
// ran before the handler. RequireValid answers 400 with the collected errors
// and skips the handler when that result is not empty.
//
// Responses: JSON, JSONError, ValidationErrors, HTML, Text, Empty and
// EmptyWithStatus. NewErrorHandler logs binding and rendering errors and
// renders them as JSON.
package handler
