package main

import (
	"github.com/dmitrymomot/reqcheck/pkg/httpserver"
	"github.com/dmitrymomot/reqcheck/pkg/mongo"
	"github.com/dmitrymomot/reqcheck/pkg/pg"
	"github.com/dmitrymomot/reqcheck/pkg/redis"
)

// Config is loaded from the environment and an optional .env file.
// The first configured backend of PG, Mongo and Redis stores users; with none
// set, users live in memory.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"reqcheck"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CORSMaxAge         int      `env:"CORS_MAX_AGE" envDefault:"86400"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	HTTP  httpserver.Config
	PG    pg.Config
	Mongo mongo.Config
	Redis redis.Config
}
