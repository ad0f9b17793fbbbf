package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	assert.False(t, cfg.Server.RateLimitEnabled())

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Server.TrustProxy)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/keuangan.db")
	t.Setenv("DB_MAX_CONNECTIONS", "3")
	t.Setenv("RATE_LIMIT_PER_SECOND", "20")
	t.Setenv("SERVER_TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/keuangan.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Database.MaxConnections)
	assert.True(t, cfg.Server.RateLimitEnabled())
	assert.True(t, cfg.Server.TrustProxy)
}

func TestLoad_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "oracle"},
			wantErr: `unsupported DB_DRIVER "oracle"`,
		},
		{
			name:    "zero pool size",
			env:     map[string]string{"DB_MAX_CONNECTIONS": "0"},
			wantErr: "DB_MAX_CONNECTIONS must be at least 1",
		},
		{
			name:    "negative rate limit",
			env:     map[string]string{"RATE_LIMIT_PER_SECOND": "-1"},
			wantErr: "RATE_LIMIT_PER_SECOND must not be negative",
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"DB_CONN_MAX_LIFETIME": "forever"},
			wantErr: "failed to parse configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "kasir",
		Password: "rahasia",
		Name:     "keuangan",
		SSLMode:  "require",
	}

	assert.Equal(t, "host='db' port='5433' user='kasir' password='rahasia' dbname='keuangan' sslmode='require'", cfg.DSN())
}

func TestDatabaseConfig_DSN_QuotesValues(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: `it's a p\ss`,
		Name:     "keuangan",
		SSLMode:  "disable",
	}

	assert.Equal(t, `host='localhost' port='5432' user='postgres' password='it\'s a p\\ss' dbname='keuangan' sslmode='disable'`, cfg.DSN())

	cfg.Password = ""
	assert.Contains(t, cfg.DSN(), "password='' dbname='keuangan'")
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: "5000"}
	assert.Equal(t, "127.0.0.1:5000", cfg.Address())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DOTENV_TEST_VALUE") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("DOTENV_TEST_VALUE"))
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept", "component", "config")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"component":"config"`)
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingConfig{Level: "verbose"}.SlogLevel())
}
