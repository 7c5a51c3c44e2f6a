package sec

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/bookplate/internal/storage"
	"github.com/stolasapp/bookplate/internal/storage/db"
)

// Authenticator is the subset of the storage layer needed to resolve a
// session cookie into a user.
type Authenticator interface {
	// GetSession returns the unexpired session for a token.
	GetSession(ctx context.Context, token string) (db.Session, error)
	// GetUser returns the user a session belongs to.
	GetUser(ctx context.Context, userID uint64) (db.User, error)
}

type principalKey struct{}

// GetAuthenticatedUser returns the user information for the authenticated
// user. Returns a zero-value User if the request carried no valid session.
func GetAuthenticatedUser(ctx context.Context) db.User {
	if user, ok := ctx.Value(principalKey{}).(db.User); ok {
		return user
	}
	return db.User{}
}

// SetAuthenticatedUser sets the user information for an authenticated user.
// The session middleware automatically injects this information; this function
// is provided as a convenience for testing.
func SetAuthenticatedUser(ctx context.Context, user db.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// SessionMiddleware resolves the session cookie on each request and attaches
// the resulting principal to the request context. The session row holds only
// the user ID; the user record is re-read from the store on every request so
// password changes and account deletion take effect immediately. Requests
// with a missing, malformed, expired, or forged cookie proceed anonymously.
func SessionMiddleware(secret []byte, store Authenticator, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				return next(c)
			}
			token, err := VerifyToken(secret, cookie.Value)
			if err != nil {
				logger.DebugContext(c.Request().Context(),
					"rejected session cookie", slog.Any("error", err))
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := store.GetSession(ctx, token)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					logger.ErrorContext(ctx, "failed to resolve session",
						slog.Any("error", err))
				}
				return next(c)
			}
			user, err := store.GetUser(ctx, session.UserID)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					logger.ErrorContext(ctx, "failed to resolve session user",
						slog.Uint64("user_id", session.UserID),
						slog.Any("error", err))
				}
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(SetAuthenticatedUser(ctx, user)))
			return next(c)
		}
	}
}

// RequireUser redirects anonymous requests to loginPath before the handler
// runs, so unauthenticated access causes no storage calls and no side
// effects.
func RequireUser(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetAuthenticatedUser(c.Request().Context()).ID == 0 {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
