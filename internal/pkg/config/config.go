package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"

	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Secret signs session tokens. Required outside development.
	Secret       string `env:"SESSION_SECRET"`
	CookieName   string `env:"SESSION_COOKIE_NAME,  default=gp_session"`
	CookieSecure bool   `env:"COOKIE_SECURE,        default=false"`
	Store        string `env:"SESSION_STORE,        default=memory"`
	CacheShards  int    `env:"SESSION_CACHE_SHARDS, default=64"`
	BcryptCost   int    `env:"BCRYPT_COST,          default=10"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,  default=data/site.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gesture_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// Validate checks enumerated settings and the production secret requirement.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("config: unsupported SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.Secret == "" && !c.IsDevelopment() {
		return fmt.Errorf("config: SESSION_SECRET is required when ENV=%s", c.Env)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("config: SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}
