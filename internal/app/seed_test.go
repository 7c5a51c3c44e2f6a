package app

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stolasapp/bookplate/internal/config"
	"github.com/stolasapp/bookplate/internal/sec"
	"github.com/stolasapp/bookplate/internal/storage"
)

func TestSeed(t *testing.T) {
	t.Parallel()

	cfg := config.Config{BcryptCost: bcrypt.MinCost}
	store, err := storage.NewDB(
		t.Context(),
		slog.Default(),
		filepath.Join(t.TempDir(), "db.sqlite"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, Seed(t.Context(), cfg, slog.Default(), store))

	user, err := store.GetUserByEmail(t.Context(), DemoEmail)
	require.NoError(t, err)
	require.NoError(t, sec.ComparePassword(DemoPassword, user.PasswordHash))

	summaries, err := store.ListSummaries(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, demoSummaries)
	for _, summary := range summaries {
		assert.NotEmpty(t, summary.Title)
		assert.GreaterOrEqual(t, summary.Rating, int64(1))
		assert.LessOrEqual(t, summary.Rating, int64(5))
	}

	// Seeding again is a no-op.
	require.NoError(t, Seed(t.Context(), cfg, slog.Default(), store))
	summaries, err = store.ListSummaries(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, demoSummaries)
}
