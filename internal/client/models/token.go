package models

import (
	"encoding/json"
	"strings"

	"golang.org/x/oauth2"
)

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// OAuth2 converts the response into an oauth2 token. An empty token type
// defaults to bearer.
func (t TokenResponse) OAuth2() *oauth2.Token {
	typ := t.TokenType
	if typ == "" {
		typ = "bearer"
	}
	return &oauth2.Token{AccessToken: t.AccessToken, TokenType: strings.ToLower(typ)}
}

// MeResponse is the /auth/me body. Some deployments return the bare user
// instead of wrapping it; see UnmarshalJSON.
type MeResponse struct {
	User *User `json:"user"`
}

func (m *MeResponse) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	if wrapped.User != nil {
		m.User = wrapped.User
		return nil
	}

	var bare User
	if err := json.Unmarshal(b, &bare); err != nil {
		return err
	}
	if bare == (User{}) {
		m.User = nil
		return nil
	}
	m.User = &bare
	return nil
}
