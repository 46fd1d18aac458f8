package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  port: "9090"
database:
  host: db.local
  user: millionaire
  dbname: millionaire
redis:
  addr: redis.local:6379
jwt:
  secret: file-secret
game:
  lock_ttl: 3s
  history_page_size: 10
rate_limit:
  max_requests: 30
  window: 30s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfigYAML))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port, "Порт БД берётся из значения по умолчанию")
	assert.Equal(t, "redis.local:6379", cfg.Redis.Addr)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.JWTExpiration())
	assert.Equal(t, 3*time.Second, cfg.Game.LockTTL)
	assert.Equal(t, 10, cfg.Game.HistoryPageSize)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_HOST", "env-db")

	cfg, err := Load(writeConfig(t, testConfigYAML))

	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-db", cfg.Database.Host)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  host: db.local
  user: millionaire
  dbname: millionaire
`))

	assert.Error(t, err, "Без JWT секрета конфигурация невалидна")
}

func TestDatabaseConfig_PostgresConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", d.PostgresConnectionString())
}
