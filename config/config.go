package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds every runtime setting of the API. Values come from the
// process environment, optionally seeded from .env files.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"littlelemon.db"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://127.0.0.1:5500,http://localhost:3000"`

	RateLimitRPS           float64 `envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst         int     `envconfig:"RATE_LIMIT_BURST" default:"100"`
	AuthRateLimitPerMinute int     `envconfig:"AUTH_RATE_LIMIT_PER_MINUTE" default:"20"`
	AnonThrottlePerMinute  int     `envconfig:"ANON_THROTTLE_PER_MINUTE" default:"5"`
	UserThrottlePerMinute  int     `envconfig:"USER_THROTTLE_PER_MINUTE" default:"10"`

	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`

	TaxRate decimal.Decimal `envconfig:"TAX_RATE" default:"0.10"`
}

// development fallback, never accepted in production
const devJWTSecret = "little-lemon-dev-secret"

// Load reads .env.<APP_ENV> and .env (when present) and decodes the
// environment into a validated Config.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	for _, file := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN must not be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set explicitly in production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.TaxRate.IsNegative() {
		return errors.New("TAX_RATE must not be negative")
	}
	if c.AnonThrottlePerMinute <= 0 || c.UserThrottlePerMinute <= 0 || c.AuthRateLimitPerMinute <= 0 {
		return errors.New("throttle rates must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
