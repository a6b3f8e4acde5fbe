package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Audit   AuditConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:9000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type CacheConfig struct {
	TTL           time.Duration `env:"CACHE_TTL,            default=5m"`
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL, default=1m"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=billing_gateway"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=2"`
}

// DevMode reports whether the gateway runs outside production. It gates
// access logging and diagnostic detail.
func (c *Config) DevMode() bool {
	return c.Env != "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
