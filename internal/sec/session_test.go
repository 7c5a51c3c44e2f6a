package sec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	first, err := NewToken()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSignVerifyToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	token, err := NewToken()
	require.NoError(t, err)
	signed := SignToken(secret, token)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		got, err := VerifyToken(secret, signed)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		_, err := VerifyToken([]byte("other-secret"), signed)
		require.ErrorIs(t, err, ErrInvalidCookie)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()
		_, sig, ok := strings.Cut(signed, ".")
		require.True(t, ok)
		_, err := VerifyToken(secret, "someoneelse."+sig)
		require.ErrorIs(t, err, ErrInvalidCookie)
	})

	t.Run("malformed values", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"", token, ".", token + ".", token + ".!!!"} {
			_, err := VerifyToken(secret, value)
			assert.ErrorIs(t, err, ErrInvalidCookie, "value %q", value)
		}
	})
}

func TestSessionCookies(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(time.Hour)
	cookie := NewSessionCookie("value", expires)
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Equal(t, "value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	expired := ExpiredSessionCookie()
	assert.Equal(t, SessionCookie, expired.Name)
	assert.Empty(t, expired.Value)
	assert.Negative(t, expired.MaxAge)
}
