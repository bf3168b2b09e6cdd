package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option configures Load.
type Option func(*options)

type options struct {
	files  []string
	prefix string
}

// WithEnvFiles loads the given dotenv files before parsing. Unlike the
// implicit ".env", these files must exist. Variables already set in the
// process environment are never overridden.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithPrefix only reads variables starting with prefix, e.g. "REQCHECK_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load parses environment variables into a new T using `env` struct tags.
// A ".env" file in the working directory is loaded once per process if it
// exists.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":3000"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var zero T

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	dotenvOnce.Do(func() {
		// A missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})
	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return zero, errors.Join(ErrEnvFileNotFound, err)
			}
			return zero, errors.Join(ErrParsingConfig, err)
		}
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{Prefix: o.prefix})
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error. Use it in main, where a service
// with a broken configuration should not start.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
