package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/middleware"
	"github.com/romainfalanga/Romainflg/utils"
)

// SignInRequest is the body of the sign-in endpoint.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthErrorResponse carries both a stable message and the text shown to the person.
type AuthErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// SignUp godoc
// @Summary Create an account
// @Description Registers an account and its profile. New accounts get the user role.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body auth.SignUpInput true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} AuthErrorResponse "Account or username already exists"
// @Failure 422 {object} AuthErrorResponse "Password too weak"
// @Router /api/v1/auth/signup [post]
func (h *SiteHandler) SignUp(c *fiber.Ctx) error {
	var in auth.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	in.Email = utils.SanitizeInput(in.Email)
	in.Username = utils.SanitizeInput(in.Username)
	if err := h.validate.Struct(in); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	session, err := h.auth.SignUp(in)
	if err != nil {
		h.metrics.ObserveAuth("signup", "failed")
		return h.respondAuthError(c, err)
	}
	h.metrics.ObserveAuth("signup", "ok")

	if session.AccessToken != "" {
		h.setSessionCookie(c, session)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"user":                  session.User,
		"profile":               session.Profile,
		"confirmation_required": session.AccessToken == "",
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Checks credentials, sets the session cookie and returns the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body SignInRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} AuthErrorResponse "incorrect credentials"
// @Router /api/v1/auth/signin [post]
func (h *SiteHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	req.Email = utils.SanitizeInput(req.Email)
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	session, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		h.metrics.ObserveAuth("signin", "failed")
		return h.respondAuthError(c, err)
	}
	h.metrics.ObserveAuth("signin", "ok")

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"data":     session,
		"redirect": "/",
	})
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the session and clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/signout [post]
func (h *SiteHandler) SignOut(c *fiber.Ctx) error {
	if err := h.auth.SignOut(middleware.AccessToken(c)); err != nil {
		// The cookie is cleared either way.
		h.logger.WithError(err).Warn("Sign-out could not revoke the provider session")
	}
	h.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"redirect": "/",
	})
}

// CurrentSession godoc
// @Summary Current session
// @Description Returns the signed-in user and role, or authenticated=false.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/session [get]
func (h *SiteHandler) CurrentSession(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"authenticated": false})
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"authenticated": true,
		"user":          session.User,
		"profile":       session.Profile,
		"is_admin":      session.IsAdmin(),
	})
}

func (h *SiteHandler) respondAuthError(c *fiber.Ctx, err error) error {
	var status int
	var kind error
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, kind = fiber.StatusUnauthorized, auth.ErrInvalidCredentials
	case errors.Is(err, auth.ErrAccountExists):
		status, kind = fiber.StatusConflict, auth.ErrAccountExists
	case errors.Is(err, auth.ErrUsernameTaken):
		status, kind = fiber.StatusConflict, auth.ErrUsernameTaken
	case errors.Is(err, auth.ErrWeakPassword):
		status, kind = fiber.StatusUnprocessableEntity, auth.ErrWeakPassword
	case errors.Is(err, auth.ErrProviderFailure):
		status, kind = fiber.StatusBadGateway, auth.ErrProviderFailure
	default:
		h.logger.WithError(err).Error("Authentication request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(AuthErrorResponse{
			Status:  "error",
			Message: err.Error(),
			Detail:  auth.UserMessage(err),
		})
	}
	return c.Status(status).JSON(AuthErrorResponse{
		Status:  "error",
		Message: kind.Error(),
		Detail:  auth.UserMessage(err),
	})
}

func (h *SiteHandler) setSessionCookie(c *fiber.Ctx, session *auth.Session) {
	cookie := &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.AccessToken,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if session.ExpiresIn > 0 {
		cookie.Expires = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}
	c.Cookie(cookie)
}

func (h *SiteHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
