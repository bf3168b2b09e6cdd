// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with caarlos0/env tags; a local .env file is
// read with godotenv when present:
//
//	type Config struct {
//		Addr      string `env:"HTTP_ADDR" envDefault:":3000"`
//		RedisURL  string `env:"REDIS_URL"`
//	}
//
//	cfg := config.MustLoad[Config]()
package config
