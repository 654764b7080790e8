package identitytest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestLoginMeLogout(t *testing.T) {
	s := New()
	defer s.Close()
	s.AddUser("ann", "a@b.com", "pw")

	resp := post(t, s.BaseURL()+"/auth/login", map[string]string{"email": "a@b.com", "password": "pw"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	assert.Equal(t, "bearer", tok.TokenType)

	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.Equal(t, int64(1), claims.UserID)

	resp = get(t, s.BaseURL()+"/auth/me", tok.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, s.BaseURL()+"/auth/logout", nil, tok.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, s.BaseURL()+"/auth/me", tok.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "logged out token is revoked")

	assert.Equal(t, 2, s.Calls("GET /api/v1/auth/me"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := New()
	defer s.Close()
	s.AddUser("ann", "a@b.com", "pw")

	resp := post(t, s.BaseURL()+"/auth/login", map[string]string{"email": "a@b.com", "password": "nope"}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid credentials", body["detail"])
}

func TestSignup_Duplicate(t *testing.T) {
	s := New()
	defer s.Close()

	in := map[string]string{"username": "ann", "email": "a@b.com", "password": "pw"}
	require.Equal(t, http.StatusCreated, post(t, s.BaseURL()+"/auth/signup", in, "").StatusCode)
	require.Equal(t, http.StatusBadRequest, post(t, s.BaseURL()+"/auth/signup", in, "").StatusCode)
}

func TestExpiredAndForeignTokensRejected(t *testing.T) {
	s := New()
	defer s.Close()
	s.AddUser("ann", "a@b.com", "pw")

	expired, err := s.IssueToken("a@b.com", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, s.BaseURL()+"/auth/me", expired).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, s.BaseURL()+"/auth/me", "not-a-jwt").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, s.BaseURL()+"/auth/me", "").StatusCode)

	_, err = s.IssueToken("ghost@b.com", time.Minute)
	require.Error(t, err)
}

func TestHealthAtRoot(t *testing.T) {
	s := New()
	defer s.Close()
	assert.Equal(t, http.StatusOK, get(t, s.URL+"/health", "").StatusCode)
}
