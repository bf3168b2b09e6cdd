package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/dmitrymomot/reqcheck/handler"
	"github.com/dmitrymomot/reqcheck/modules/users"
	"github.com/dmitrymomot/reqcheck/pkg/binder"
	"github.com/dmitrymomot/reqcheck/pkg/clientip"
	"github.com/dmitrymomot/reqcheck/pkg/httpserver"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/ratelimit"
	"github.com/dmitrymomot/reqcheck/pkg/requestid"
	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

func newRouter(cfg Config, log *slog.Logger, svc *users.Service, checks ...httpserver.Check) (http.Handler, error) {
	limiter, err := ratelimit.NewTokenBucket(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	r := chi.NewRouter()

	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		logger.Middleware(log),
		corsHandler(cfg).Handler,
		ratelimit.Middleware(limiter, ratelimit.ByIP(),
			ratelimit.WithLogger(log),
			ratelimit.WithOnLimitReached(tooManyRequests),
			ratelimit.WithSkipFunc(isHealthProbe),
		),
	)

	r.Get("/", handler.Wrap(index))
	r.Get("/hello", handler.Wrap(hello))
	r.With(validator.Middleware(binder.Request(), nil, validator.WithLogger(log))).
		Post("/createTask", handler.Wrap(createTask(log),
			handler.WithBinder[handler.Context, map[string]any](handler.BindValidated()),
			handler.WithErrorHandler[handler.Context, map[string]any](handler.NewErrorHandler(log)),
		))

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks...))

	r.Mount("/users", users.NewModule(svc, log).Handle())

	return r, nil
}

func corsHandler(cfg Config) *cors.Cors {
	origins := make([]string, 0, len(cfg.CORSAllowedOrigins))
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", requestid.Header},
		ExposedHeaders: []string{requestid.Header},
		MaxAge:         cfg.CORSMaxAge,
	})
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
	_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
}

func isHealthProbe(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/health/")
}

func index(_ handler.Context, _ struct{}) handler.Response {
	return handler.HTML("<h1>hello World!</h1>")
}

func hello(_ handler.Context, _ struct{}) handler.Response {
	return handler.Text("hello World!")
}

func createTask(log *slog.Logger) handler.HandlerFunc[handler.Context, map[string]any] {
	return func(ctx handler.Context, body map[string]any) handler.Response {
		log.DebugContext(ctx, "task received", slog.Any("body", body))
		return handler.JSON(map[string]string{"foo": "bar"})
	}
}
