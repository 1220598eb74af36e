package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  secret: s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "article.#", cfg.RabbitMQ.BindingKey)
	assert.Equal(t, time.Hour, cfg.Reconcile.Interval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CONDUIT_TEST_SECRET", "from-env")
	t.Setenv("CONDUIT_TEST_DB_PASSWORD", "pw")
	path := writeConfig(t, `
database:
  user: conduit
  password: ${CONDUIT_TEST_DB_PASSWORD}
  dbname: conduit
  conn_max_lifetime: 5m
http:
  request_timeout: 3s
auth:
  secret: ${CONDUIT_TEST_SECRET}
  token_ttl: 1h
rabbitmq:
  enabled: true
  queue_name: audit
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "audit", cfg.RabbitMQ.QueueName)
	assert.Equal(t,
		"host=localhost port=5432 user=conduit password=pw dbname=conduit sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: debug\n"))
	assert.Error(t, err)
}

func TestLoad_NegativeReconcileInterval(t *testing.T) {
	_, err := Load(writeConfig(t, "auth:\n  secret: s3cret\nreconcile:\n  interval: -5m\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconcile.interval")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
