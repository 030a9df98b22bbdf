package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvConfig_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.InDelta(t, 0.4, cfg.Gemini.Temperature, 1e-6)
	assert.Equal(t, int32(8192), cfg.Gemini.MaxOutputTokens)
	assert.True(t, cfg.Fetch.Enabled)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "5432", cfg.Repo.Port)
	assert.False(t, cfg.Repo.Enabled())
}

func TestReadEnvConfig_Overrides(t *testing.T) {
	t.Setenv("GEMINI_KEY", "abc")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("FETCH_ENABLED", "false")
	t.Setenv("FETCH_RPM", "5")
	t.Setenv("TELEGRAM_OWNER_ID", "42")
	t.Setenv("ADMIN_USER_IDS", "1,2")
	t.Setenv("REPO_DB_HOST", "db")

	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "abc", cfg.GeminiKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.False(t, cfg.Fetch.Enabled)
	assert.Equal(t, 5, cfg.Fetch.RPM)
	assert.Equal(t, int64(42), cfg.TelegramOwnerID)
	assert.Equal(t, []string{"1", "2"}, cfg.AdminUserIDs)
	assert.True(t, cfg.Repo.Enabled())
}
