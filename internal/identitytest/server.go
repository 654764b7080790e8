// Package identitytest runs an in-process identity API for tests. It speaks
// the same JSON contract as the real service: login, signup, me, logout,
// users, items and the root health check.
package identitytest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ozo/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// APIPrefix is where the API routes are mounted.
const APIPrefix = "/api/v1"

// Claims carried by issued tokens. Subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

type account struct {
	user     models.User
	password string
}

// Server is a fake identity API backed by an httptest.Server.
type Server struct {
	*httptest.Server

	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	nextID  int64
	users   map[string]*account
	revoked map[string]bool
	items   []models.Item
	calls   map[string]int
	// delay is applied before answering any API call.
	delay time.Duration
}

// New starts a server. Close it when done.
func New() *Server {
	s := &Server{
		secret:  []byte("identitytest-" + uuid.NewString()),
		ttl:     time.Hour,
		users:   make(map[string]*account),
		revoked: make(map[string]bool),
		calls:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+APIPrefix+"/auth/login", s.login)
	mux.HandleFunc("POST "+APIPrefix+"/auth/signup", s.signup)
	mux.HandleFunc("GET "+APIPrefix+"/auth/me", s.authorized(s.me))
	mux.HandleFunc("POST "+APIPrefix+"/auth/logout", s.authorized(s.logout))
	mux.HandleFunc("GET "+APIPrefix+"/items/", s.authorized(s.listItems))
	mux.HandleFunc("GET "+APIPrefix+"/users/{id}", s.authorized(s.getUser))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	s.Server = httptest.NewServer(s.count(mux))
	return s
}

// BaseURL is the API root to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// AddUser registers an account directly.
func (s *Server) AddUser(username, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password)
}

func (s *Server) addUserLocked(username, email, password string) models.User {
	s.nextID++
	u := models.User{ID: s.nextID, Username: username, Email: email}
	s.users[email] = &account{user: u, password: password}
	return u
}

// IssueToken mints a token for a registered email valid for ttl. A negative
// ttl yields an already expired token.
func (s *Server) IssueToken(email string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	acc, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		return "", errors.New("identitytest: unknown user " + email)
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: acc.user.ID,
	})
	return tok.SignedString(s.secret)
}

// Revoke makes token unacceptable from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

// SetItems replaces the items listing.
func (s *Server) SetItems(items []models.Item) {
	s.mu.Lock()
	s.items = append([]models.Item(nil), items...)
	s.mu.Unlock()
}

// SetDelay slows every API answer down, e.g. to observe in-flight state.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// Calls returns how many requests hit "METHOD /path".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 && r.URL.Path != "/health" {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// authorized rejects requests without a valid, unrevoked bearer token.
func (s *Server) authorized(next func(http.ResponseWriter, *http.Request, *account, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		s.mu.Lock()
		acc, known := s.users[claims.Subject]
		revoked := s.revoked[raw]
		s.mu.Unlock()

		if !known || revoked {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r, acc, raw)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "field required"}},
		})
		return
	}

	s.mu.Lock()
	acc, ok := s.users[in.Email]
	s.mu.Unlock()
	if !ok || acc.password != in.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok, err := s.IssueToken(in.Email, s.ttl)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" || in.Username == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "field required"}},
		})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[in.Email]; exists {
		s.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	u := s.addUserLocked(in.Username, in.Email, in.Password)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, acc *account, _ string) {
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user})
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request, _ *account, token string) {
	s.Revoke(token)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Logged out"})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request, _ *account, _ string) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	items := s.items
	s.mu.Unlock()

	out := []models.Item{}
	for i := skip; i < len(items) && len(out) < limit; i++ {
		if i >= 0 {
			out = append(out, items[i])
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, _ *account, _ string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.users {
		if acc.user.ID == id {
			writeJSON(w, http.StatusOK, acc.user)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "User not found")
}
