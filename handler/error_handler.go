package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/requestid"
	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// NewErrorHandler returns an error handler that logs the error with the
// request ID and renders it with JSONError. Validation errors, such as a
// returned Result.Err(), are rendered like ValidationErrors instead. Client
// errors are logged at warn level, everything else at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := http.StatusInternalServerError
		_ = errorToDetail(err, &status)

		level := slog.LevelError
		if isClientError(status) {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Status(status),
			logger.HTTPRequest(r.Method, r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := JSONError(err)
		if verrs := validator.ExtractValidationErrors(err); verrs != nil {
			resp = validationErrors(verrs)
		}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
