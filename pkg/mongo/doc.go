// Package mongo connects to MongoDB with retries.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//	db := client.Database(cfg.Database)
//
// Config is read from MONGODB_* environment variables. Healthcheck plugs into
// httpserver.HealthCheckHandler.
package mongo
