package mongo

import "time"

// Config describes the MongoDB client. An empty ConnectionURL means MongoDB
// is not used.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL"`                                  // e.g. "mongodb://localhost:27017"
	Database        string        `env:"MONGODB_DATABASE" envDefault:"reqcheck"`       // database used by the app
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // dial timeout per attempt
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // pool size limit
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // connections kept open when idle
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // idle connections older than this are closed
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // connection attempts before giving up
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`       // delay between attempts
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
