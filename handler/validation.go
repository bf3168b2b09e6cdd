package handler

import (
	"errors"
	"net/http"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

// ErrNotValidated is returned by BindValidated when no validation middleware
// ran for the request.
var ErrNotValidated = errors.New("request has not been through a validation middleware")

type validationErrorsBody struct {
	Errors validator.ValidationErrors `json:"errors"`
}

// ValidationErrors renders a failed validation result as
// 400 {"errors": [{"location", "field", "value", "message"}, ...]}.
func ValidationErrors(res validator.Result) Response {
	return validationErrors(res.Array())
}

func validationErrors(errs validator.ValidationErrors) Response {
	if errs == nil {
		errs = validator.ValidationErrors{}
	}
	return JSON(validationErrorsBody{Errors: errs}, WithJSONStatus(http.StatusBadRequest))
}

// RequireValid short-circuits the handler with ValidationErrors when any
// validation middleware before it collected errors.
func RequireValid[C Context, R any]() Decorator[C, R] {
	return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
		return func(ctx C, req R) Response {
			if res := ctx.Validation(); !res.IsEmpty() {
				return ValidationErrors(res)
			}
			return next(ctx, req)
		}
	}
}

// BindValidated decodes the body bound by the validation middleware into the
// request struct, matching keys by `json` tag and converting scalar types
// where needed. Values rewritten by chain sanitizers replace the raw ones.
// The request body is not read again.
func BindValidated() Bind {
	return func(r *http.Request, v any) error {
		req, ok := validator.RequestFrom(r.Context())
		if !ok {
			return ErrNotValidated
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           v,
		})
		if err != nil {
			return err
		}
		body := validator.ResultFrom(r.Context()).Overlay(validator.LocationBody, req.Body)
		if err := dec.Decode(body); err != nil {
			return errors.Join(ErrBadRequest, err)
		}
		return nil
	}
}
