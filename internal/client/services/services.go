package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// ErrNoPendingVerification means there is no registered address waiting
// for its code.
var ErrNoPendingVerification = errors.New("no pending verification")

// Session is the part of the session manager the services use.
type Session interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error)
	Refresh(ctx context.Context) (models.Identity, error)
	Identity() (models.Identity, bool)
}

// PendingStore keeps the address awaiting OTP verification.
type PendingStore interface {
	PendingEmail(ctx context.Context) (string, error)
	SetPendingEmail(ctx context.Context, email string) error
	ClearPendingEmail(ctx context.Context) error
}

// validate runs the local form checks; failures also match
// client.ErrValidation so callers can treat local and remote rejections
// alike.
func validate(v any) error {
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", client.ErrValidation, err)
	}
	return nil
}
