// Package pg opens pgx connection pools and applies goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, users.Migrations, log); err != nil {
//		return err
//	}
//
// Config is read from the environment (DATABASE_URL and PG_* variables).
// Connect retries with a growing delay until the database answers a ping.
// Healthcheck plugs into httpserver.HealthCheckHandler.
//
// IsNotFoundError and IsDuplicateKeyError classify driver errors without
// importing pgx in callers.
package pg
