// Package credstore persists the client's two pieces of durable state: the
// bearer token and the email address awaiting OTP verification.
package credstore

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// Store is a typed view over the local key/value state.
type Store struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(v)), nil
}

// Token returns the persisted token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, common.TokenKey)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenKey, []byte(token))
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenKey)
}

// PendingEmail returns the address awaiting verification, or "".
func (s *Store) PendingEmail(ctx context.Context) (string, error) {
	return s.get(ctx, common.PendingEmailKey)
}

// SetPendingEmail replaces any previously pending address.
func (s *Store) SetPendingEmail(ctx context.Context, email string) error {
	return s.repo.Set(ctx, common.PendingEmailKey, []byte(email))
}

func (s *Store) ClearPendingEmail(ctx context.Context) error {
	return s.repo.Delete(ctx, common.PendingEmailKey)
}

// Keys lists the slots currently holding a value.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.repo.Keys(ctx)
}
