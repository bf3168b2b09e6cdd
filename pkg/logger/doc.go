// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers that keep key names consistent across the code.
//
// New picks a JSON or text handler and, when context extractors are
// registered, wraps it so that values such as the request ID are added to
// every record logged with a context:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "reqcheck"),
//	    logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	log.InfoContext(ctx, "user registered", logger.Field("username"))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
//
// Middleware logs HTTP requests and their response status.
package logger
