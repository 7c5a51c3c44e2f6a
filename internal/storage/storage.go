// Package storage provides the state management for users, summaries, and
// sessions.
package storage

import (
	"context"
	"time"

	"github.com/stolasapp/bookplate/internal/storage/db"
)

const (
	// ErrNotFound is returned when a user, summary, or session cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a user with the same email already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail Error = "email must be a plausible address of at most 254 characters"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// CreateUser inserts a new user, assigning an ID if one is not set. An
	// [ErrAlreadyExists] is returned if the email is already registered; the
	// check is a single atomic insert relying on the uniqueness constraint,
	// so concurrent signups with the same email cannot both succeed.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
	// GetUser returns a single user with the specified ID. An [ErrNotFound]
	// is returned if the user ID does not exist.
	GetUser(ctx context.Context, userID uint64) (db.User, error)
	// GetUserByEmail returns a single user with the specified email. An
	// [ErrNotFound] is returned if the email is not registered.
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	// DeleteUser removes a user and all their summaries and sessions. Note
	// that this is a hard delete; data is not recoverable.
	DeleteUser(ctx context.Context, userID uint64) error
}

// Summaries are the methods on a storage implementation that are responsible
// for accessing and modifying book summaries. Every operation is owner-scoped:
// the query filters on both the summary ID and the owning user ID.
type Summaries interface {
	// ListSummaries returns all summaries owned by the given user.
	ListSummaries(ctx context.Context, userID uint64) ([]db.Summary, error)
	// GetSummary returns a single summary owned by userID. An [ErrNotFound]
	// is returned if the summary does not exist or belongs to another user.
	GetSummary(ctx context.Context, userID, summaryID uint64) (db.Summary, error)
	// CreateSummary inserts a new summary owned by summary.UserID, assigning
	// an ID if one is not set.
	CreateSummary(ctx context.Context, summary db.Summary) (db.Summary, error)
	// UpdateSummary replaces all fields of the summary matching both ID and
	// owner. An [ErrNotFound] is returned if no row matched, including when
	// the row exists but belongs to another user.
	UpdateSummary(ctx context.Context, summary db.Summary) error
	// DeleteSummary removes the summary matching both ID and owner. Deleting
	// an absent or non-owned summary is a no-op.
	DeleteSummary(ctx context.Context, userID, summaryID uint64) error
}

// Sessions are the methods on a storage implementation that are responsible
// for the server-side login sessions.
type Sessions interface {
	// CreateSession persists a session row.
	CreateSession(ctx context.Context, session db.Session) error
	// GetSession returns the session with the given token. An [ErrNotFound]
	// is returned for unknown and for expired tokens alike.
	GetSession(ctx context.Context, token string) (db.Session, error)
	// DeleteSession removes a session. Deleting an absent token is a no-op.
	DeleteSession(ctx context.Context, token string) error
	// PurgeExpiredSessions removes every session that has expired as of now.
	PurgeExpiredSessions(ctx context.Context, now time.Time) error
}

// Store is the combination interface for [Users], [Summaries], and [Sessions].
type Store interface {
	Users
	Summaries
	Sessions
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
