package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/db"
	"github.com/romainfalanga/Romainflg/models"
)

// Identity is the authenticated account as known to the identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Tokens is an issued provider session.
type Tokens struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    int      `json:"expires_in"`
	User         Identity `json:"user"`
}

// SignUpResult is what the provider answers to a registration.
// Tokens is nil when the account still needs email confirmation.
type SignUpResult struct {
	User          Identity
	HasIdentities bool
	Tokens        *Tokens
}

// IdentityProvider is the hosted authentication service.
type IdentityProvider interface {
	SignUp(email, password string, data map[string]interface{}) (*SignUpResult, error)
	SignIn(email, password string) (*Tokens, error)
	SignOut(accessToken string) error
	User(accessToken string) (*Identity, error)
}

// ProfileStore reads and creates user_profiles rows.
type ProfileStore interface {
	GetUserProfile(userID string) (*models.UserProfile, error)
	InsertUserProfile(profile models.UserProfile) (*models.UserProfile, error)
}

// Session is an authenticated viewer with its role-carrying profile.
type Session struct {
	AccessToken string              `json:"access_token,omitempty"`
	ExpiresIn   int                 `json:"expires_in,omitempty"`
	User        Identity            `json:"user"`
	Profile     *models.UserProfile `json:"profile"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Profile.IsAdmin()
}

// Options configures a Service.
type Options struct {
	// JWTSecret enables local verification of access tokens.
	JWTSecret string
	// IsAdminEmail decides which new accounts receive the admin role.
	IsAdminEmail func(email string) bool
}

// Service signs people in and out and resolves sessions.
type Service struct {
	provider     IdentityProvider
	profiles     ProfileStore
	jwtSecret    []byte
	isAdminEmail func(string) bool
	logger       *logrus.Logger
}

// NewService creates an auth Service.
func NewService(provider IdentityProvider, profiles ProfileStore, opts Options, logger *logrus.Logger) *Service {
	isAdmin := opts.IsAdminEmail
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	var secret []byte
	if opts.JWTSecret != "" {
		secret = []byte(opts.JWTSecret)
	}
	return &Service{
		provider:     provider,
		profiles:     profiles,
		jwtSecret:    secret,
		isAdminEmail: isAdmin,
		logger:       logger,
	}
}

// SignUpInput is a registration request.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// SignUp registers an account and creates its profile. The returned session
// has no access token when the provider requires email confirmation first.
func (s *Service) SignUp(in SignUpInput) (*Session, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)

	res, err := s.provider.SignUp(email, in.Password, map[string]interface{}{"username": username})
	if err != nil {
		return nil, err
	}
	// An existing, confirmed address comes back as an obfuscated user without identities.
	if !res.HasIdentities {
		return nil, ErrAccountExists
	}

	role := models.RoleUser
	if s.isAdminEmail(email) {
		role = models.RoleAdmin
	}

	profile, err := s.ensureProfile(res.User.ID, username, role)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": res.User.ID,
		"role":    profile.Role,
	}).Info("Account created")

	session := &Session{User: res.User, Profile: profile}
	if res.Tokens != nil {
		session.AccessToken = res.Tokens.AccessToken
		session.ExpiresIn = res.Tokens.ExpiresIn
	}
	return session, nil
}

// SignIn checks credentials and returns a session, creating the profile when it is missing.
func (s *Service) SignIn(email, password string) (*Session, error) {
	tokens, err := s.provider.SignIn(strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if s.isAdminEmail(tokens.User.Email) {
		role = models.RoleAdmin
	}
	profile, err := s.ensureProfile(tokens.User.ID, usernameFromEmail(tokens.User.Email), role)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		User:        tokens.User,
		Profile:     profile,
	}, nil
}

// SignOut revokes the provider session behind accessToken.
func (s *Service) SignOut(accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := s.provider.SignOut(accessToken); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// Authenticate resolves accessToken into a session with its profile.
// A missing profile yields a session whose Profile is nil (never admin).
func (s *Service) Authenticate(accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, ErrInvalidSession
	}

	var user *Identity
	var err error
	if s.jwtSecret != nil {
		user, err = s.verifyLocally(accessToken)
	} else {
		user, err = s.provider.User(accessToken)
	}
	if errors.Is(err, ErrProviderFailure) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	profile, err := s.profiles.GetUserProfile(user.ID)
	if err != nil && !errors.Is(err, db.ErrRecordNotFound) {
		return nil, fmt.Errorf("could not load profile of %s: %w", user.ID, err)
	}

	return &Session{AccessToken: accessToken, User: *user, Profile: profile}, nil
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) verifyLocally(token string) (*Identity, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &Identity{ID: claims.Subject, Email: claims.Email}, nil
}

// ensureProfile returns the profile of userID, creating it when absent.
func (s *Service) ensureProfile(userID, username string, role models.Role) (*models.UserProfile, error) {
	existing, err := s.profiles.GetUserProfile(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, db.ErrRecordNotFound) {
		return nil, err
	}

	created, err := s.profiles.InsertUserProfile(models.UserProfile{
		ID:       userID,
		Username: username,
		Role:     role,
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
		}
		return nil, err
	}
	return created, nil
}

func usernameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
