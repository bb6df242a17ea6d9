package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
dbname = "calendar_test"

[redis]
enabled = true
channel = "events"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "calendar_test", cfg.Database.DBName)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "events", cfg.Redis.Channel)

	// Незатронутые файлом значения остаются дефолтными
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Booking.AutoConfirmAIOnly)
	assert.Equal(t, 20.0, cfg.Booking.RateLimitRPS)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.internal"
password = "from-file"
`)

	t.Setenv("DB_HOST", "db.prod")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("REDIS_ADDR", "redis.prod:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.prod", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "redis.prod:6379", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "calendar_service",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=calendar_service sslmode=disable",
		d.DSN())
}
