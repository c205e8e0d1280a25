package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/tournament?sslmode=disable")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
		assert.Equal(t, 25, cfg.DBMaxOpenConns)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.False(t, cfg.ArchiveEnabled())
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("sqlite with overrides", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "sqlite")
		t.Setenv("DATABASE_URL", "file:tournament.db")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
		assert.Equal(t, 9090, cfg.ServerPort)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DatabaseDriver: DriverPostgres,
			DatabaseURL:    "postgres://localhost/tournament",
			ServerPort:     8080,
			DBMaxOpenConns: 10,
			LogLevel:       "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: true},
		{name: "zero pool", mutate: func(c *Config) { c.DBMaxOpenConns = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "partial r2", mutate: func(c *Config) { c.R2BucketName = "standings" }, wantErr: true},
		{
			name: "full r2",
			mutate: func(c *Config) {
				c.R2AccountID = "acc"
				c.R2AccessKeyID = "key"
				c.R2SecretAccessKey = "secret"
				c.R2BucketName = "standings"
				c.R2PublicBaseURL = "https://cdn.example"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
