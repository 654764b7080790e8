// Package models defines the data exchanged between the ozo CLI and the
// identity API.
package models

import (
	"encoding/json"

	"github.com/dmitrijs2005/ozo/internal/common"
)

// Credentials are the login inputs. Secret is kept as a byte slice so it
// can be wiped once the login request has been sent.
type Credentials struct {
	Identifier string
	Secret     []byte
}

// NewCredentials normalizes the identifier and copies the secret.
func NewCredentials(identifier string, secret []byte) (Credentials, error) {
	c := Credentials{Identifier: common.NormalizeIdentifier(identifier)}
	if c.Identifier == "" {
		return Credentials{}, common.ErrEmptyIdentifier
	}
	if len(secret) == 0 {
		return Credentials{}, common.ErrEmptySecret
	}
	c.Secret = append([]byte(nil), secret...)
	return c, nil
}

// MarshalJSON renders the identity service login body.
func (c Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{c.Identifier, string(c.Secret)})
}

// String never reveals the secret.
func (c Credentials) String() string {
	return "Credentials{" + c.Identifier + ", ***}"
}

// Wipe zeroes the secret in place.
func (c *Credentials) Wipe() {
	common.WipeByteArray(c.Secret)
	c.Secret = nil
}

// SignupData is the account-creation body.
type SignupData struct {
	Username string
	Email    string
	Password []byte
}

func (s SignupData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{s.Username, s.Email, string(s.Password)})
}

func (s *SignupData) Wipe() {
	common.WipeByteArray(s.Password)
	s.Password = nil
}
