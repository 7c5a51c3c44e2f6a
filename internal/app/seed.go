package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stolasapp/bookplate/internal/config"
	"github.com/stolasapp/bookplate/internal/sec"
	"github.com/stolasapp/bookplate/internal/storage"
	"github.com/stolasapp/bookplate/internal/storage/db"
)

// Demo account credentials, seeded in dev mode only.
const (
	DemoEmail    = "demo@bookplate.test"
	DemoPassword = "password"

	demoSummaries = 8
)

// Seed creates the demo account with a shelf of generated summaries. Safe to
// call on every startup; it does nothing once the account exists.
func Seed(ctx context.Context, cfg config.Config, logger *slog.Logger, store storage.Store) error {
	_, err := store.GetUserByEmail(ctx, DemoEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check for demo user: %w", err)
	}

	hash, err := sec.HashPassword(DemoPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	user, err := store.CreateUser(ctx, db.User{Email: DemoEmail, PasswordHash: hash})
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	// Deterministic seed so restarts against a wiped database produce the
	// same shelf.
	faker := gofakeit.New(1)
	readStart := time.Now().AddDate(-2, 0, 0)
	readEnd := time.Now()

	for range demoSummaries {
		book := faker.Book()
		summary := db.Summary{
			UserID:   user.ID,
			Title:    book.Title,
			Author:   book.Author,
			ISBN:     faker.Numerify("978-#-###-#####-#"),
			Rating:   int64(faker.Number(1, 5)),
			DateRead: faker.DateRange(readStart, readEnd).Format("2006-01-02"),
			Body:     faker.Paragraph(2, 4, 12, "\n\n"),
		}
		if _, err := store.CreateSummary(ctx, summary); err != nil {
			return fmt.Errorf("failed to create demo summary: %w", err)
		}
	}

	logger.InfoContext(ctx, "seeded demo account",
		slog.String("email", DemoEmail),
		slog.Int("summaries", demoSummaries),
	)
	return nil
}
