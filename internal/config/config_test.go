package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "12345:token")
	t.Setenv("ADMIN_ID", "1000")
	t.Setenv("DB_DSN", "postgres://localhost/nailbot")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "12345:token", cfg.TelegramToken)
	assert.Equal(t, int64(1000), cfg.AdminID)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TIMEZONE", "Asia/Yekaterinburg")
	t.Setenv("MINIAPP_URL", "https://panel.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "Asia/Yekaterinburg", cfg.Timezone)
	assert.Equal(t, "https://panel.example.com", cfg.MiniappURL)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBadAdminID(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
