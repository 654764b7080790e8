package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ozo/internal/client/models"
	"golang.org/x/oauth2"
)

// Login exchanges credentials for an access token. The request is sent
// without a bearer header and a 401 here never touches the store.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*oauth2.Token, error) {
	var resp models.TokenResponse
	if err := c.doJSON(withoutCredentials(ctx), http.MethodPost, c.endpoint("/auth/login", nil), creds, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.Join(ErrMalformedResponse, errors.New("login response has no access_token"))
	}
	return resp.OAuth2(), nil
}

// Signup creates an account. It does not log in.
func (c *Client) Signup(ctx context.Context, data models.SignupData) (*models.User, error) {
	var u models.User
	if err := c.doJSON(withoutCredentials(ctx), http.MethodPost, c.endpoint("/auth/signup", nil), data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the profile bound to the stored token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp models.MeResponse
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/auth/me", nil), nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.Join(ErrMalformedResponse, errors.New("profile response has no user"))
	}
	return resp.User, nil
}

// Logout notifies the server. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, c.endpoint("/auth/logout", nil), nil, nil)
}
