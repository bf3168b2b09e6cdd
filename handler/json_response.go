package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

// JSONResponse is the standard JSON response structure
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON renders v as the response body with status 200. Errors are rendered
// like JSONError.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": {...}}. HTTPError keeps its status and
// key, validation errors become 400 with per-field details, anything else is
// a 500.
func JSONError(err error, opts ...JSONOption) Response {
	status := http.StatusInternalServerError
	r := &jsonResponse{body: JSONResponse{Error: errorToDetail(err, &status)}}
	r.status = status
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error, status *int) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		*status = http.StatusBadRequest
		detail := &ErrorDetail{Code: "validation_error", Message: verrs.Error()}
		if len(verrs) > 0 {
			detail.Details = make(map[string][]string, len(verrs))
			for _, field := range verrs.Fields() {
				detail.Details[field] = verrs.Get(field)
			}
		}
		return detail
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		*status = httpErr.Code
		return &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	return &ErrorDetail{Code: "internal_error", Message: err.Error()}
}
