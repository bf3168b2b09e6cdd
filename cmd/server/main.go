// Command server runs the demo HTTP service: plain routes, a health probe and
// the validated /users routes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/reqcheck/modules/users"
	"github.com/dmitrymomot/reqcheck/pkg/clientip"
	"github.com/dmitrymomot/reqcheck/pkg/config"
	"github.com/dmitrymomot/reqcheck/pkg/httpserver"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/mongo"
	"github.com/dmitrymomot/reqcheck/pkg/pg"
	"github.com/dmitrymomot/reqcheck/pkg/redis"
	"github.com/dmitrymomot/reqcheck/pkg/requestid"
)

func main() {
	cfg, err := config.Load[Config]()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	storage, checks, cleanup, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := users.NewService(storage,
		users.WithBcryptCost(cfg.BcryptCost),
		users.WithLogger(log),
	)

	router, err := newRouter(cfg, log, svc, checks...)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// openStorage picks the user storage backend. cleanup is never nil.
func openStorage(ctx context.Context, cfg Config, log *slog.Logger) (users.Storage, []httpserver.Check, func(), error) {
	noop := func() {}

	switch {
	case cfg.PG.Enabled():
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, users.Migrations(), log); err != nil {
			pool.Close()
			return nil, nil, noop, err
		}
		log.Info("using postgres user storage")
		return users.NewPostgresStorage(pool), []httpserver.Check{pg.Healthcheck(pool)}, pool.Close, nil

	case cfg.Mongo.Enabled():
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, noop, err
		}
		disconnect := func() {
			if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
				log.Error("failed to disconnect mongo", logger.Error(err))
			}
		}
		storage, err := users.NewMongoStorage(ctx, client.Database(cfg.Mongo.Database))
		if err != nil {
			disconnect()
			return nil, nil, noop, err
		}
		log.Info("using mongo user storage")
		return storage, []httpserver.Check{mongo.Healthcheck(client)}, disconnect, nil

	case cfg.Redis.Enabled():
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		log.Info("using redis user storage")
		return users.NewRedisStorage(client), []httpserver.Check{redis.Healthcheck(client)}, func() { _ = client.Close() }, nil
	}

	return users.NewMemoryStorage(), nil, noop, nil
}
