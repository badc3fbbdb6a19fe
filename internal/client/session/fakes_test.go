package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

type fakeAPI struct {
	mu sync.Mutex

	// inputs captured
	meCalls       int
	meTokens      []string
	loginCalls    int
	lastEmail     string
	lastPassword  string
	registerCalls int

	// outputs preset
	meUser   *models.Identity
	meErr    error
	token    string
	user     *models.Identity
	loginErr error
	regRes   *models.RegistrationResult
	regErr   error

	// tokenOf reports the credential active at call time
	tokenOf func() string
	// loginGate, when set, blocks Login until closed
	loginGate chan struct{}
	// meBlock makes Me wait for ctx cancellation
	meBlock bool
}

func (f *fakeAPI) Me(ctx context.Context) (*models.Identity, error) {
	f.mu.Lock()
	f.meCalls++
	if f.tokenOf != nil {
		f.meTokens = append(f.meTokens, f.tokenOf())
	}
	block := f.meBlock
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.meUser, f.meErr
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	f.mu.Lock()
	f.loginCalls++
	f.lastEmail, f.lastPassword = email, password
	gate := f.loginGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return f.token, f.user, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	f.mu.Lock()
	f.registerCalls++
	f.mu.Unlock()
	return f.regRes, f.regErr
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls + f.loginCalls + f.registerCalls
}

type memStore struct {
	mu       sync.Mutex
	token    string
	getErr   error
	setErr   error
	clearErr error
	clears   int
}

func (s *memStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.getErr
}

func (s *memStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.token = token
	return nil
}

func (s *memStore) ClearToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

func (s *memStore) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
