package auth

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrUsernameTaken      = errors.New("username or email already used")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrProviderFailure    = errors.New("authentication provider failure")
)

// UserMessage returns the message shown to the person behind a failed auth request.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Email ou mot de passe incorrect."
	case errors.Is(err, ErrAccountExists):
		return "Un compte avec cet email existe déjà. Essayez de vous connecter."
	case errors.Is(err, ErrWeakPassword):
		return "Le mot de passe doit contenir au moins 6 caractères."
	case errors.Is(err, ErrUsernameTaken):
		return "Ce nom d'utilisateur ou cet email est déjà utilisé. Essayez avec des informations différentes."
	case errors.Is(err, ErrInvalidSession):
		return "Session expirée. Veuillez vous reconnecter."
	case errors.Is(err, ErrProviderFailure):
		return "Erreur lors de la création du compte. Veuillez réessayer dans quelques secondes."
	default:
		return "Une erreur est survenue. Veuillez réessayer."
	}
}

// GoTrue client errors look like "response status code 422: {json body}".
var statusPrefix = regexp.MustCompile(`^response status code (\d+): `)

// classifyProviderError maps a GoTrue error onto the package sentinels.
// Unknown errors are returned as they are.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	raw := err.Error()
	body := statusPrefix.ReplaceAllString(raw, "")
	code := gjson.Get(body, "error_code").String()
	if code == "" {
		code = gjson.Get(body, "error").String()
	}
	msg := firstNonEmpty(
		gjson.Get(body, "msg").String(),
		gjson.Get(body, "error_description").String(),
		gjson.Get(body, "message").String(),
		raw,
	)

	switch {
	case code == "user_already_exists" || code == "email_exists" || strings.Contains(msg, "User already registered"):
		return wrap(ErrAccountExists, msg)
	case code == "weak_password" || strings.Contains(msg, "Password should be at least"):
		return wrap(ErrWeakPassword, msg)
	case code == "invalid_credentials" || code == "invalid_grant" || strings.Contains(msg, "Invalid login credentials"):
		return wrap(ErrInvalidCredentials, msg)
	case code == "unexpected_failure" || strings.Contains(msg, "Database error saving new user"):
		return wrap(ErrProviderFailure, msg)
	}
	return err
}

// isDuplicateKey reports whether a PostgREST error is a unique constraint violation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "already exists")
}

type classifiedError struct {
	kind error
	msg  string
}

func (e *classifiedError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *classifiedError) Unwrap() error { return e.kind }

// providerStatus returns the HTTP status carried by a GoTrue error, or 0 when
// the request never got an answer.
func providerStatus(err error) int {
	m := statusPrefix.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	status, _ := strconv.Atoi(m[1])
	return status
}

func wrap(kind error, msg string) error {
	return &classifiedError{kind: kind, msg: msg}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
