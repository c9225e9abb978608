package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")
	t.Setenv("CHAT_WEBHOOK_URL", "https://hooks.example.com/chat")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.Equal(t, int32(5), cfg.DBMinConns)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadPoolOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat")
	t.Setenv("CHAT_WEBHOOK_URL", "https://hooks.example.com/chat")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_MAX_CONNS", "50")
	t.Setenv("DB_MIN_CONNS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int32(50), cfg.DBMaxConns)
	assert.Equal(t, int32(10), cfg.DBMinConns)
}
