package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("POSTGRES_URL", "postgres://localhost/app")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RememberMeTokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "off", cfg.InsightsProvider)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadConfig_RefusesWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("POSTGRES_URL", "postgres://localhost/app")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_RefusesWithoutDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("POSTGRES_URL", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "POSTGRES_URL")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("POSTGRES_URL", "postgres://localhost/app")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("BACKUP_POLL_INTERVAL", "30s")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.BackupPollInterval)
	assert.Equal(t, 2525, cfg.SMTPPort)
}
