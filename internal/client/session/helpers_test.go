package session

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/client/gateway"
	"github.com/dmitrijs2005/ozo/internal/client/models"
	"github.com/dmitrijs2005/ozo/internal/identitytest"
	"github.com/dmitrijs2005/ozo/internal/logging"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeAPI is a scripted IdentityAPI.
type fakeAPI struct {
	mu sync.Mutex

	loginTok *oauth2.Token
	loginErr error
	meUser   *models.User
	meErr    error
	outErr   error
	signUser *models.User
	signErr  error

	// block, when set, is waited on inside Me.
	block chan struct{}
	// loginBlock, when set, is waited on inside Login.
	loginBlock chan struct{}

	lastCreds  models.Credentials
	lastSecret string
	loginCalls int
	meCalls    int
	outCalls   int
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (*oauth2.Token, error) {
	f.mu.Lock()
	f.loginCalls++
	f.lastCreds = creds
	f.lastSecret = string(creds.Secret)
	block := f.loginBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.loginTok, f.loginErr
}

func (f *fakeAPI) Signup(_ context.Context, data models.SignupData) (*models.User, error) {
	return f.signUser, f.signErr
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	f.mu.Lock()
	f.meCalls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.meUser, f.meErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outCalls++
	return f.outErr
}

func (f *fakeAPI) calls() (login, me, out int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.meCalls, f.outCalls
}

// stack wires a real gateway against the fake identity service.
type stack struct {
	srv   *identitytest.Server
	store *credstore.Memory
	gw    *gateway.Client
	ctrl  *Controller
	acc   *Accessor
}

func newStack(t *testing.T) *stack {
	t.Helper()
	srv := identitytest.New()
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	gw, err := gateway.New(gateway.Options{BaseURL: srv.BaseURL()}, store, logging.Nop())
	require.NoError(t, err)

	return &stack{
		srv:   srv,
		store: store,
		gw:    gw,
		ctrl:  NewController(gw, store, logging.Nop()),
		acc:   NewAccessor(store, logging.Nop()),
	}
}

func (s *stack) token(t *testing.T) (string, bool) {
	t.Helper()
	tok, ok, err := s.store.Token(context.Background())
	require.NoError(t, err)
	return tok, ok
}

func creds(email, pw string) models.Credentials {
	return models.Credentials{Identifier: email, Secret: []byte(pw)}
}
