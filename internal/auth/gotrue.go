package auth

import (
	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// GoTrueProvider adapts the Supabase auth client to IdentityProvider.
type GoTrueProvider struct {
	client gotrue.Client
}

// NewGoTrueProvider wraps client, usually the Auth field of a supabase-go client.
func NewGoTrueProvider(client gotrue.Client) *GoTrueProvider {
	return &GoTrueProvider{client: client}
}

func (p *GoTrueProvider) SignUp(email, password string, data map[string]interface{}) (*SignUpResult, error) {
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     data,
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	user := resp.User
	if user.ID == uuid.Nil {
		user = resp.Session.User
	}

	result := &SignUpResult{
		User:          identityOf(user),
		HasIdentities: len(user.Identities) > 0,
	}
	if resp.Session.AccessToken != "" {
		result.Tokens = &Tokens{
			AccessToken:  resp.Session.AccessToken,
			RefreshToken: resp.Session.RefreshToken,
			ExpiresIn:    resp.Session.ExpiresIn,
			User:         result.User,
		}
	}
	return result, nil
}

func (p *GoTrueProvider) SignIn(email, password string) (*Tokens, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, classifyProviderError(err)
	}
	return &Tokens{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         identityOf(resp.User),
	}, nil
}

func (p *GoTrueProvider) SignOut(accessToken string) error {
	return classifyProviderError(p.client.WithToken(accessToken).Logout())
}

func (p *GoTrueProvider) User(accessToken string) (*Identity, error) {
	resp, err := p.client.WithToken(accessToken).GetUser()
	if err != nil {
		// Only a 4xx answer says something about the token itself.
		if status := providerStatus(err); status < 400 || status >= 500 {
			return nil, wrap(ErrProviderFailure, err.Error())
		}
		return nil, classifyProviderError(err)
	}
	id := identityOf(resp.User)
	return &id, nil
}

func identityOf(u types.User) Identity {
	return Identity{ID: u.ID.String(), Email: u.Email}
}
