package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.AnonThrottlePerMinute)
	assert.Equal(t, 10, cfg.UserThrottlePerMinute)
	assert.True(t, cfg.TaxRate.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost user=lemon dbname=lemon")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TAX_RATE", "0.075")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "0.075", cfg.TaxRate.String())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			AppEnv:                 "development",
			DBDriver:               DriverSQLite,
			DBDSN:                  "file.db",
			JWTSecret:              "x",
			JWTTTL:                 time.Hour,
			AuthRateLimitPerMinute: 1,
			AnonThrottlePerMinute:  1,
			UserThrottlePerMinute:  1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "unsupported DB_DRIVER"},
		{"empty dsn", func(c *Config) { c.DBDSN = "" }, "DB_DSN"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"dev secret in production", func(c *Config) {
			c.AppEnv = "production"
			c.JWTSecret = devJWTSecret
		}, "production"},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, "JWT_TTL"},
		{"negative tax", func(c *Config) { c.TaxRate = decimal.NewFromInt(-1) }, "TAX_RATE"},
		{"zero throttle", func(c *Config) { c.UserThrottlePerMinute = 0 }, "throttle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
