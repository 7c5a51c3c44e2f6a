package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of [sql.DB] the query methods need. It exists so the
// queries can run against a transaction as well as the root handle.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries bundles the parameterized statements for the schema.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to the given handle or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const createUser = `
INSERT INTO users (id, email, password_hash, create_time)
VALUES (?, ?, ?, ?)
`

// CreateUser inserts a user row. Email uniqueness is enforced by the schema;
// callers translate the constraint violation.
func (q *Queries) CreateUser(ctx context.Context, user User) error {
	_, err := q.db.ExecContext(ctx, createUser,
		user.ID, user.Email, user.PasswordHash, user.CreateTime)
	return err
}

const getUser = `
SELECT id, email, password_hash, create_time FROM users WHERE id = ?
`

// GetUser returns the user with the given ID, or [sql.ErrNoRows].
func (q *Queries) GetUser(ctx context.Context, id uint64) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx, getUser, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreateTime)
	return user, err
}

const getUserByEmail = `
SELECT id, email, password_hash, create_time FROM users WHERE email = ?
`

// GetUserByEmail returns the user with the given email, or [sql.ErrNoRows].
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx, getUserByEmail, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreateTime)
	return user, err
}

const deleteUser = `
DELETE FROM users WHERE id = ?
`

// DeleteUser removes a user row. Summaries and sessions cascade.
func (q *Queries) DeleteUser(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

const createSummary = `
INSERT INTO summaries (id, user_id, book_title, book_author, book_isbn, rating, date_read, summary)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateSummary inserts a summary row owned by summary.UserID.
func (q *Queries) CreateSummary(ctx context.Context, summary Summary) error {
	_, err := q.db.ExecContext(ctx, createSummary,
		summary.ID, summary.UserID, summary.Title, summary.Author,
		summary.ISBN, summary.Rating, summary.DateRead, summary.Body)
	return err
}

const getSummary = `
SELECT id, user_id, book_title, book_author, book_isbn, rating, date_read, summary
FROM summaries WHERE id = ? AND user_id = ?
`

// GetSummary returns a single summary, scoped to its owner.
func (q *Queries) GetSummary(ctx context.Context, id, userID uint64) (Summary, error) {
	var summary Summary
	err := q.db.QueryRowContext(ctx, getSummary, id, userID).Scan(
		&summary.ID, &summary.UserID, &summary.Title, &summary.Author,
		&summary.ISBN, &summary.Rating, &summary.DateRead, &summary.Body)
	return summary, err
}

const listSummaries = `
SELECT id, user_id, book_title, book_author, book_isbn, rating, date_read, summary
FROM summaries WHERE user_id = ? ORDER BY id
`

// ListSummaries returns every summary owned by userID in creation order.
func (q *Queries) ListSummaries(ctx context.Context, userID uint64) ([]Summary, error) {
	rows, err := q.db.QueryContext(ctx, listSummaries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(
			&summary.ID, &summary.UserID, &summary.Title, &summary.Author,
			&summary.ISBN, &summary.Rating, &summary.DateRead, &summary.Body,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

const updateSummary = `
UPDATE summaries
SET book_title = ?, book_author = ?, book_isbn = ?, rating = ?, date_read = ?, summary = ?
WHERE id = ? AND user_id = ?
`

// UpdateSummary replaces all fields of a summary, scoped to its owner.
// Returns the number of rows changed (0 or 1).
func (q *Queries) UpdateSummary(ctx context.Context, summary Summary) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateSummary,
		summary.Title, summary.Author, summary.ISBN, summary.Rating,
		summary.DateRead, summary.Body, summary.ID, summary.UserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteSummary = `
DELETE FROM summaries WHERE id = ? AND user_id = ?
`

// DeleteSummary removes a summary, scoped to its owner. Deleting an absent
// row is a no-op.
func (q *Queries) DeleteSummary(ctx context.Context, id, userID uint64) error {
	_, err := q.db.ExecContext(ctx, deleteSummary, id, userID)
	return err
}

const createSession = `
INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)
`

// CreateSession inserts a session row.
func (q *Queries) CreateSession(ctx context.Context, session Session) error {
	_, err := q.db.ExecContext(ctx, createSession,
		session.Token, session.UserID, session.ExpiresAt)
	return err
}

const getSession = `
SELECT token, user_id, expires_at FROM sessions WHERE token = ? AND expires_at > ?
`

// GetSession returns the unexpired session with the given token, or
// [sql.ErrNoRows]. Expired rows are treated as absent.
func (q *Queries) GetSession(ctx context.Context, token string, now time.Time) (Session, error) {
	var session Session
	err := q.db.QueryRowContext(ctx, getSession, token, now).
		Scan(&session.Token, &session.UserID, &session.ExpiresAt)
	return session, err
}

const deleteSession = `
DELETE FROM sessions WHERE token = ?
`

// DeleteSession removes a session row. Deleting an absent row is a no-op.
func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.db.ExecContext(ctx, deleteSession, token)
	return err
}

const deleteExpiredSessions = `
DELETE FROM sessions WHERE expires_at <= ?
`

// DeleteExpiredSessions purges every session that expired at or before now.
func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := q.db.ExecContext(ctx, deleteExpiredSessions, now)
	return err
}
