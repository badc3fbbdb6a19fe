package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

// API is the part of the remote API the session depends on.
type API interface {
	Me(ctx context.Context) (*models.Identity, error)
	Login(ctx context.Context, email, password string) (string, *models.Identity, error)
	Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error)
}

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithTimeout bounds the API round trips of Bootstrap, Login and Refresh.
// Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

type Manager struct {
	api     API
	store   TokenStore
	cred    *client.Credential
	log     logging.Logger
	timeout time.Duration

	// opMu serializes transitions for their whole duration.
	opMu sync.Mutex

	mu       sync.RWMutex
	state    State
	identity *models.Identity

	resolved chan struct{}
}

// New builds an Unresolved manager. cred is the slot the HTTP client reads
// the bearer token from.
func New(api API, store TokenStore, cred *client.Credential, opts ...Option) *Manager {
	m := &Manager{
		api:      api,
		store:    store,
		cred:     cred,
		log:      logging.Nop{},
		resolved: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

func (m *Manager) settle(state State, identity *models.Identity) {
	m.mu.Lock()
	m.state = state
	m.identity = identity
	m.mu.Unlock()
}

// dropCredential forgets the token in memory and on disk. The disk write is
// attempted even if ctx is already done.
func (m *Manager) dropCredential(ctx context.Context) error {
	m.cred.Clear()
	if err := m.store.ClearToken(context.WithoutCancel(ctx)); err != nil {
		m.log.Error(ctx, "failed to clear persisted token", "err", err)
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Bootstrap resolves the session from the persisted token. It always ends
// in Anonymous or Authenticated; API and storage failures are logged, not
// returned. The only error is ErrAlreadyResolved.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.State() != Unresolved {
		return ErrAlreadyResolved
	}
	defer close(m.resolved)

	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read persisted token, starting anonymous", "err", err)
		m.settle(Anonymous, nil)
		return nil
	}
	if token == "" {
		m.log.Debug(ctx, "no persisted token")
		m.settle(Anonymous, nil)
		return nil
	}

	m.cred.Set(token)

	rctx, cancel := m.withTimeout(ctx)
	defer cancel()

	user, err := m.api.Me(rctx)
	if err != nil {
		m.log.Warn(ctx, "persisted token rejected, discarding it", "err", err)
		_ = m.dropCredential(ctx)
		m.settle(Anonymous, nil)
		return nil
	}

	m.settle(Authenticated, user)
	m.log.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Login exchanges credentials for a token. On failure nothing local changes.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Identity, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	switch m.State() {
	case Unresolved:
		return models.Identity{}, ErrNotResolved
	case Authenticated:
		return models.Identity{}, ErrAlreadyAuthenticated
	}

	rctx, cancel := m.withTimeout(ctx)
	defer cancel()

	token, user, err := m.api.Login(rctx, strings.TrimSpace(email), password)
	if err != nil {
		return models.Identity{}, err
	}
	if token == "" || user == nil {
		return models.Identity{}, fmt.Errorf("%w: login answered without token or user", client.ErrUnexpectedStatus)
	}

	if err := m.store.SetToken(ctx, token); err != nil {
		return models.Identity{}, fmt.Errorf("persist token: %w", err)
	}
	m.cred.Set(token)
	m.settle(Authenticated, user)

	m.log.Info(ctx, "logged in", "user_id", user.ID)
	return *user, nil
}

// Register submits a registration. It never creates a session.
func (m *Manager) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	rctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.api.Register(rctx, r)
}

// Logout forgets the session. Calling it when nobody is logged in is a no-op
// apart from clearing storage; it does not resolve an Unresolved session.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	next := Anonymous
	if m.State() == Unresolved {
		next = Unresolved
	}
	m.settle(next, nil)

	if err := m.dropCredential(ctx); err != nil {
		return err
	}
	m.log.Info(ctx, "logged out")
	return nil
}

// Refresh re-reads the current user from the API. An authentication failure
// ends the session; any other failure leaves it as it was.
func (m *Manager) Refresh(ctx context.Context) (models.Identity, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.State() != Authenticated {
		return models.Identity{}, ErrNotAuthenticated
	}

	rctx, cancel := m.withTimeout(ctx)
	defer cancel()

	user, err := m.api.Me(rctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			m.log.Warn(ctx, "session no longer valid", "err", err)
			m.settle(Anonymous, nil)
			_ = m.dropCredential(ctx)
		}
		return models.Identity{}, err
	}

	m.settle(Authenticated, user)
	return *user, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Identity returns a copy of the current user; ok is false when nobody is
// logged in.
func (m *Manager) Identity() (identity models.Identity, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return models.Identity{}, false
	}
	return *m.identity, true
}

// Token returns the active bearer token or "".
func (m *Manager) Token() string {
	return m.cred.Token()
}

// Resolved is closed once Bootstrap has finished.
func (m *Manager) Resolved() <-chan struct{} {
	return m.resolved
}

// WaitResolved blocks until Bootstrap has finished or ctx is done.
func (m *Manager) WaitResolved(ctx context.Context) error {
	select {
	case <-m.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequireAuth waits for resolution and returns the current user, or
// ErrNotAuthenticated.
func (m *Manager) RequireAuth(ctx context.Context) (models.Identity, error) {
	if err := m.WaitResolved(ctx); err != nil {
		return models.Identity{}, err
	}
	identity, ok := m.Identity()
	if !ok {
		return models.Identity{}, ErrNotAuthenticated
	}
	return identity, nil
}
