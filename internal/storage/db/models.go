package db

import "time"

// User is a registered account. The password hash is a bcrypt digest; the
// plaintext never touches the database.
type User struct {
	ID           uint64
	Email        string
	PasswordHash []byte
	CreateTime   time.Time
}

// Summary is a single book-summary note owned by a user. DateRead is kept as
// the YYYY-MM-DD string submitted by the form; it is display data, never
// computed on.
type Summary struct {
	ID       uint64
	UserID   uint64
	Title    string
	Author   string
	ISBN     string
	Rating   int64
	DateRead string
	Body     string
}

// Session is a server-side login session. Token is the random identifier
// delivered to the browser in a signed cookie; the row holds only the owning
// user ID so identity is re-resolved from the users table on each request.
type Session struct {
	Token     string
	UserID    uint64
	ExpiresAt time.Time
}
