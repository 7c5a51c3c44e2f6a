package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/stolasapp/bookplate/internal/storage/db"
)

// maxEmailLen is the RFC 5321 limit on address length.
const maxEmailLen = 254

// emailRegex is deliberately loose; it rejects obvious garbage without
// attempting full RFC 5322 validation.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) bool {
	return len(email) <= maxEmailLen && emailRegex.MatchString(email)
}

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB opens (and if needed creates and migrates) the SQLite database at
// dbPath and returns a store on top of it.
func NewDB(ctx context.Context, logger *slog.Logger, dbPath string) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	if !validateEmail(user.Email) {
		return user, ErrInvalidEmail
	}
	if user.ID == 0 {
		user.ID = d.ids.Next()
	}
	if user.CreateTime.IsZero() {
		user.CreateTime = time.Now().UTC()
	}
	switch err := d.queries.CreateUser(ctx, user); {
	case isUniqueViolation(err):
		return user, ErrAlreadyExists
	default:
		return user, err
	}
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID uint64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// GetUserByEmail satisfies the [Users] interface.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	user, err := d.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// DeleteUser satisfies the [Users] interface.
func (d *DB) DeleteUser(ctx context.Context, userID uint64) error {
	return d.queries.DeleteUser(ctx, userID)
}

// ListSummaries satisfies the [Summaries] interface.
func (d *DB) ListSummaries(ctx context.Context, userID uint64) ([]db.Summary, error) {
	return d.queries.ListSummaries(ctx, userID)
}

// GetSummary satisfies the [Summaries] interface.
func (d *DB) GetSummary(ctx context.Context, userID, summaryID uint64) (db.Summary, error) {
	summary, err := d.queries.GetSummary(ctx, summaryID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return summary, ErrNotFound
	}
	return summary, err
}

// CreateSummary satisfies the [Summaries] interface.
func (d *DB) CreateSummary(ctx context.Context, summary db.Summary) (db.Summary, error) {
	if summary.ID == 0 {
		summary.ID = d.ids.Next()
	}
	return summary, d.queries.CreateSummary(ctx, summary)
}

// UpdateSummary satisfies the [Summaries] interface.
func (d *DB) UpdateSummary(ctx context.Context, summary db.Summary) error {
	changed, err := d.queries.UpdateSummary(ctx, summary)
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSummary satisfies the [Summaries] interface.
func (d *DB) DeleteSummary(ctx context.Context, userID, summaryID uint64) error {
	return d.queries.DeleteSummary(ctx, summaryID, userID)
}

// CreateSession satisfies the [Sessions] interface.
func (d *DB) CreateSession(ctx context.Context, session db.Session) error {
	// Timestamps are stored as text and compared lexicographically, so every
	// bound time must be in UTC.
	session.ExpiresAt = session.ExpiresAt.UTC()
	return d.queries.CreateSession(ctx, session)
}

// GetSession satisfies the [Sessions] interface.
func (d *DB) GetSession(ctx context.Context, token string) (db.Session, error) {
	session, err := d.queries.GetSession(ctx, token, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return session, ErrNotFound
	}
	return session, err
}

// DeleteSession satisfies the [Sessions] interface.
func (d *DB) DeleteSession(ctx context.Context, token string) error {
	return d.queries.DeleteSession(ctx, token)
}

// PurgeExpiredSessions satisfies the [Sessions] interface.
func (d *DB) PurgeExpiredSessions(ctx context.Context, now time.Time) error {
	return d.queries.DeleteExpiredSessions(ctx, now.UTC())
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

var _ Store = (*DB)(nil)
