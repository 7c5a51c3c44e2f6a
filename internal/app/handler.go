package app

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/stolasapp/bookplate/internal/app/view"
	"github.com/stolasapp/bookplate/internal/config"
	"github.com/stolasapp/bookplate/internal/content"
	"github.com/stolasapp/bookplate/internal/sec"
	"github.com/stolasapp/bookplate/internal/storage"
	"github.com/stolasapp/bookplate/internal/storage/db"
)

// User-visible flash messages. Storage failures never surface details to the
// browser; they are logged and replaced with the generic message.
const (
	msgGenericError    = "An unexpected error occurred. Please try again."
	msgUserNotFound    = "User not found. Please signup"
	msgBadCredentials  = "Invalid email or password"
	msgMissingFields   = "Email and password are required"
	msgInvalidEmail    = "Please enter a valid email address"
	msgTitleRequired   = "Title is required"
	msgSummaryNotFound = "Summary not found"
)

type handler struct {
	cfg        config.Config
	logger     *slog.Logger
	store      storage.Store
	renderBody content.Transformer
}

func (h handler) register(srv *echo.Echo) {
	srv.GET("/signup", h.authForm("signup"))
	srv.POST("/signup", h.signup)
	srv.GET("/login", h.authForm("login"))
	srv.POST("/login", h.login)
	srv.POST("/logout", h.logout)

	authed := srv.Group("", sec.RequireUser("/login"))
	authed.GET("/", h.index)
	authed.GET("/add", h.addForm)
	authed.POST("/add", h.add)
	authed.GET("/summary/:id", h.summary)
	authed.GET("/edit/:id", h.editForm)
	authed.POST("/edit/:id", h.edit)
	authed.POST("/delete/:id", h.del)
}

// page assembles the fields every view shares. The flash message travels as a
// query parameter so it survives the redirect after a failed form post.
func (h handler) page(c echo.Context) view.Page {
	page := view.Page{Error: c.QueryParam("error")}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRF = token
	}
	if user := sec.GetAuthenticatedUser(c.Request().Context()); user.ID != 0 {
		page.Email = user.Email
	}
	return page
}

// flash redirects to path with a flash message in the error query parameter.
func flash(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}

func (h handler) authForm(mode string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sec.GetAuthenticatedUser(c.Request().Context()).ID != 0 {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return c.Render(http.StatusOK, "auth.html", view.AuthPage{
			Page: h.page(c),
			Mode: mode,
		})
	}
}

func (h handler) signup(c echo.Context) error {
	ctx := c.Request().Context()

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return flash(c, "/signup", msgMissingFields)
	}

	hash, err := sec.HashPassword(password, h.cfg.BcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		return flash(c, "/signup", msgGenericError)
	}

	user, err := h.store.CreateUser(ctx, db.User{Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		// The address is registered; send them to login instead.
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, storage.ErrInvalidEmail):
		return flash(c, "/signup", msgInvalidEmail)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		return flash(c, "/signup", msgGenericError)
	}

	if err := h.establishSession(c, user.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to create session",
			slog.Uint64("user_id", user.ID), slog.Any("error", err))
		return flash(c, "/login", msgGenericError)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return flash(c, "/login", msgMissingFields)
	}

	user, err := h.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return flash(c, "/login", msgUserNotFound)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to look up user", slog.Any("error", err))
		return flash(c, "/login", msgGenericError)
	}

	if err := sec.ComparePassword(password, user.PasswordHash); err != nil {
		return flash(c, "/login", msgBadCredentials)
	}

	// Logins are a natural point to sweep out expired sessions. Best effort;
	// an unexpired session is never affected.
	if err := h.store.PurgeExpiredSessions(ctx, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to purge expired sessions", slog.Any("error", err))
	}

	if err := h.establishSession(c, user.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to create session",
			slog.Uint64("user_id", user.ID), slog.Any("error", err))
		return flash(c, "/login", msgGenericError)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// establishSession mints a session for the user and sets the signed cookie.
func (h handler) establishSession(c echo.Context, userID uint64) error {
	token, err := sec.NewToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(h.cfg.SessionTTL)
	err = h.store.CreateSession(c.Request().Context(), db.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expires,
	})
	if err != nil {
		return err
	}
	signed := sec.SignToken([]byte(h.cfg.SessionSecret), token)
	c.SetCookie(sec.NewSessionCookie(signed, expires))
	return nil
}

func (h handler) logout(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(sec.SessionCookie); err == nil {
		token, err := sec.VerifyToken([]byte(h.cfg.SessionSecret), cookie.Value)
		if err == nil {
			if err := h.store.DeleteSession(ctx, token); err != nil {
				h.logger.ErrorContext(ctx, "failed to delete session", slog.Any("error", err))
			}
		}
	}

	// Drop the cookie even if the token was bad; the browser forgets either way.
	c.SetCookie(sec.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h handler) index(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	page := view.IndexPage{Page: h.page(c)}
	summaries, err := h.store.ListSummaries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list summaries",
			slog.Uint64("user_id", user.ID), slog.Any("error", err))
		page.Error = msgGenericError
	}
	page.Summaries = summaries
	return c.Render(http.StatusOK, "index.html", page)
}

func (h handler) addForm(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", view.FormPage{
		Page:    h.page(c),
		Heading: "Add Summary",
		Action:  "/add",
		Ratings: view.FormRatings(),
	})
}

func (h handler) add(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	summary := summaryForm(c)
	if summary.Title == "" {
		return flash(c, "/add", msgTitleRequired)
	}
	summary.UserID = user.ID

	if _, err := h.store.CreateSummary(ctx, summary); err != nil {
		h.logger.ErrorContext(ctx, "failed to create summary",
			slog.Uint64("user_id", user.ID), slog.Any("error", err))
		return flash(c, "/", msgGenericError)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h handler) summary(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	page := view.SummaryPage{Page: h.page(c)}

	summaryID, err := parseID(c)
	if err != nil {
		return c.Render(http.StatusOK, "summary.html", page)
	}

	summary, err := h.store.GetSummary(ctx, user.ID, summaryID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Render(http.StatusOK, "summary.html", page)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to get summary",
			slog.Uint64("user_id", user.ID),
			slog.Uint64("summary_id", summaryID),
			slog.Any("error", err))
		page.Error = msgGenericError
		return c.Render(http.StatusOK, "summary.html", page)
	}

	page.Found = true
	page.Summary = summary
	body, err := h.renderBody.Transform([]byte(summary.Body))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render summary body",
			slog.Uint64("summary_id", summaryID), slog.Any("error", err))
		// Fall back to the escaped raw text.
		body = []byte(template.HTMLEscapeString(summary.Body))
	}
	page.Body = template.HTML(body)
	return c.Render(http.StatusOK, "summary.html", page)
}

func (h handler) editForm(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	summaryID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	summary, err := h.store.GetSummary(ctx, user.ID, summaryID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return flash(c, "/", msgSummaryNotFound)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to get summary",
			slog.Uint64("user_id", user.ID),
			slog.Uint64("summary_id", summaryID),
			slog.Any("error", err))
		return flash(c, "/", msgGenericError)
	}

	return c.Render(http.StatusOK, "form.html", view.FormPage{
		Page:    h.page(c),
		Heading: "Edit Summary",
		Action:  fmt.Sprintf("/edit/%d", summaryID),
		Summary: summary,
		Ratings: view.FormRatings(),
	})
}

func (h handler) edit(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	summaryID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	summary := summaryForm(c)
	if summary.Title == "" {
		return flash(c, fmt.Sprintf("/edit/%d", summaryID), msgTitleRequired)
	}
	summary.ID = summaryID
	summary.UserID = user.ID

	err = h.store.UpdateSummary(ctx, summary)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return flash(c, "/", msgSummaryNotFound)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update summary",
			slog.Uint64("user_id", user.ID),
			slog.Uint64("summary_id", summaryID),
			slog.Any("error", err))
		return flash(c, "/", msgGenericError)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h handler) del(c echo.Context) error {
	ctx := c.Request().Context()
	user := sec.GetAuthenticatedUser(ctx)

	summaryID, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	// Deletes are idempotent; an absent or non-owned row is a no-op and the
	// user lands back on their list either way.
	if err := h.store.DeleteSummary(ctx, user.ID, summaryID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete summary",
			slog.Uint64("user_id", user.ID),
			slog.Uint64("summary_id", summaryID),
			slog.Any("error", err))
		return flash(c, "/", msgGenericError)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// summaryForm reads the shared add/edit form. The rating is clamped to the
// selectable range; anything unparseable becomes the minimum.
func summaryForm(c echo.Context) db.Summary {
	rating, err := strconv.ParseInt(c.FormValue("rating"), 10, 64)
	if err != nil || rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return db.Summary{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Author:   strings.TrimSpace(c.FormValue("author")),
		ISBN:     strings.TrimSpace(c.FormValue("isbn")),
		Rating:   rating,
		DateRead: strings.TrimSpace(c.FormValue("dateread")),
		Body:     c.FormValue("summary"),
	}
}
