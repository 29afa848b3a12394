package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every storefront environment variable.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and deploy manifests.
const (
	EnvAppEnv      = "PEAS_APP_ENV"
	EnvPort        = "PEAS_APP_PORT"
	EnvCatalogSeed = "PEAS_CATALOG_SEED_PATH"
	EnvRedisURL    = "PEAS_REDIS_URL"
	EnvCartDriver  = "PEAS_CART_STORE_DRIVER"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Redis   RedisConfig
	Static  StaticConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validateDriver(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PEAS_APP_ENV" required:"true"`
	Port         string `envconfig:"PEAS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PEAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PEAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout  time.Duration `envconfig:"PEAS_HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PEAS_HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"PEAS_HTTP_IDLE_TIMEOUT" default:"60s"`
}

type CatalogConfig struct {
	// SeedPath points at the fixed product list the backend serves.
	SeedPath string `envconfig:"PEAS_CATALOG_SEED_PATH" default:"data/products.json"`
	// APIBaseURL is where the storefront-side catalog and order clients reach
	// the JSON API. Empty means the process's own listen address.
	APIBaseURL     string        `envconfig:"PEAS_API_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"PEAS_CATALOG_REQUEST_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	// Driver selects the cart snapshot store: redis or memory.
	Driver string `envconfig:"PEAS_CART_STORE_DRIVER" default:"memory"`
	// TTL bounds how long an abandoned session cart survives.
	TTL           time.Duration `envconfig:"PEAS_CART_TTL" default:"720h"`
	SessionCookie string        `envconfig:"PEAS_CART_SESSION_COOKIE" default:"peas_session"`
}

const (
	CartDriverRedis  = "redis"
	CartDriverMemory = "memory"
)

func (c CartConfig) validateDriver() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case CartDriverRedis, CartDriverMemory:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q, got %q", EnvCartDriver, CartDriverRedis, CartDriverMemory, c.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"PEAS_REDIS_URL"`
	Address      string        `envconfig:"PEAS_REDIS_ADDR"`
	Password     string        `envconfig:"PEAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"PEAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PEAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PEAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PEAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PEAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PEAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StaticConfig struct {
	// Dir holds the storefront assets served at the site root, matching the
	// original express static middleware. Empty disables static serving.
	Dir string `envconfig:"PEAS_STATIC_DIR" default:"web/static"`
}
