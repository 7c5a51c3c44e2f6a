package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Not parallel: t.Setenv mutates process state.

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BOOKPLATE_SESSION_SECRET", "test-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "localhost:8888", cfg.WebAddress)
		assert.Equal(t, "test-secret", cfg.SessionSecret)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.False(t, cfg.DevMode)
		assert.NotEmpty(t, cfg.DBFilepath)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("BOOKPLATE_SESSION_SECRET", "test-secret")
		t.Setenv("BOOKPLATE_DB_FILEPATH", ":memory:")
		t.Setenv("BOOKPLATE_WEB_ADDRESS", "127.0.0.1:0")
		t.Setenv("BOOKPLATE_SESSION_TTL", "1h")
		t.Setenv("BOOKPLATE_BCRYPT_COST", "4")
		t.Setenv("BOOKPLATE_LOG_LEVEL", "DEBUG")
		t.Setenv("BOOKPLATE_DEV_MODE", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":memory:", cfg.DBFilepath)
		assert.Equal(t, "127.0.0.1:0", cfg.WebAddress)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.True(t, cfg.DevMode)
	})

	t.Run("missing secret", func(t *testing.T) {
		// t.Setenv registers the restore; the variable must be absent, not
		// merely empty, for the required check to trip.
		t.Setenv("BOOKPLATE_SESSION_SECRET", "")
		require.NoError(t, os.Unsetenv("BOOKPLATE_SESSION_SECRET"))

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		t.Setenv("BOOKPLATE_SESSION_SECRET", "test-secret")
		t.Setenv("BOOKPLATE_BCRYPT_COST", "99")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-positive TTL", func(t *testing.T) {
		t.Setenv("BOOKPLATE_SESSION_SECRET", "test-secret")
		t.Setenv("BOOKPLATE_SESSION_TTL", "-1h")

		_, err := Load()
		require.Error(t, err)
	})
}
