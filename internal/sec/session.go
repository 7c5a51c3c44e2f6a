package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "bookplate_session"

// tokenBytes is the entropy of a session token (256 bits).
const tokenBytes = 32

// ErrInvalidCookie is returned when a session cookie is malformed or its
// signature does not verify.
var ErrInvalidCookie = errors.New("invalid session cookie")

// NewToken mints a random session token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SignToken produces the cookie value for a token: the token followed by an
// HMAC-SHA256 signature keyed with secret. A forged or tampered cookie fails
// verification before any database lookup happens.
func SignToken(secret []byte, token string) string {
	return token + "." + base64.RawURLEncoding.EncodeToString(sign(secret, token))
}

// VerifyToken extracts the token from a cookie value, verifying its
// signature. Returns [ErrInvalidCookie] on any mismatch.
func VerifyToken(secret []byte, value string) (string, error) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", ErrInvalidCookie
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidCookie
	}
	if !hmac.Equal(got, sign(secret, token)) {
		return "", ErrInvalidCookie
	}
	return token, nil
}

func sign(secret []byte, token string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// NewSessionCookie builds the session cookie for a signed token value.
func NewSessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that instructs the browser to drop the
// session cookie immediately.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
