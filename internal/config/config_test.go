package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
database:
  host: localhost
  user: resto
  database: resto
auth:
  secret: s3cret
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10080, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 4, cfg.Notifications.Workers)
	assert.Equal(t, 256, cfg.Notifications.QueueSize)
	assert.False(t, cfg.MirrorEnabled())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
server:
  port: 9090
rabbitmq:
  host: mq.internal
`))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.MirrorEnabled())
	assert.Equal(t, "mq.internal", cfg.RabbitMQ.Host)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RESTO_SERVER_PORT", "8081")
	t.Setenv("RESTO_DATABASE_HOST", "db.internal")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadMissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  host: localhost
  user: resto
  database: resto
`))
	assert.Error(t, err)
}

func TestLoadIncompleteDatabase(t *testing.T) {
	_, err := Load(writeConfig(t, `
auth:
  secret: s3cret
`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
