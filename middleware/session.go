package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/utils"
)

const (
	// SessionCookie holds the access token of a signed-in browser.
	SessionCookie = "site_session"
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"

	sessionKey    = "session"
	sessionErrKey = "session_error"
)

// SessionResolver turns an access token into a session.
type SessionResolver interface {
	Authenticate(accessToken string) (*auth.Session, error)
}

// AccessToken extracts the token from the Authorization header or the session cookie.
func AccessToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies(SessionCookie)
}

// LoadSession attaches the viewer session when the request carries a valid token.
// Requests without a token, or with a rejected one, continue anonymously. Any
// other failure is kept on the request so RequireSession can report it instead
// of sending the viewer back to the login page.
func LoadSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := AccessToken(c)
		if token == "" {
			return c.Next()
		}
		session, err := resolver.Authenticate(token)
		switch {
		case err == nil:
			c.Locals(sessionKey, session)
		case !errors.Is(err, auth.ErrInvalidSession):
			c.Locals(sessionErrKey, err)
		}
		return c.Next()
	}
}

// SessionFrom returns the session attached by LoadSession, or nil.
func SessionFrom(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(sessionKey).(*auth.Session)
	return s
}

// RequireSession stops anonymous requests. Browsers are redirected to the
// login page, API clients get a 401 carrying the redirect target.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFrom(c) != nil {
			return c.Next()
		}
		if err, ok := c.Locals(sessionErrKey).(error); ok {
			return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("could not load session: %v", err))
		}
		if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML) {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":   "error",
			"message":  "authentication required",
			"redirect": LoginPath,
		})
	}
}

// RequireAdmin stops requests whose session lacks the admin role. Use after RequireSession.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFrom(c).IsAdmin() {
			return utils.RespondWithError(c, fiber.StatusForbidden, "admin role required")
		}
		return c.Next()
	}
}
