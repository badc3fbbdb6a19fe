package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// AuthService covers getting in and out: login, logout and the
// register/verify onboarding flow.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error)
	PendingEmail(ctx context.Context) (string, error)
	VerifyOTP(ctx context.Context, otp string) (string, error)
	ResendOTP(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	session Session
	api     client.Client
	pending PendingStore
}

func NewAuthService(session Session, api client.Client, pending PendingStore) AuthService {
	return &authService{session: session, api: api, pending: pending}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Identity, error) {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validate(creds); err != nil {
		return models.Identity{}, err
	}
	return a.session.Login(ctx, creds.Email, creds.Password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Register checks the form locally, submits it and remembers the address
// so the verification screen knows whom the code is for. A new registration
// replaces any address still pending.
func (a *authService) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	r.Email = common.NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if err := validate(r); err != nil {
		return nil, err
	}

	res, err := a.session.Register(ctx, r)
	if err != nil {
		return nil, err
	}

	email := r.Email
	if res.Email != "" {
		email = res.Email
	}
	if err := a.pending.SetPendingEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("remember pending email: %w", err)
	}
	return res, nil
}

func (a *authService) PendingEmail(ctx context.Context) (string, error) {
	return a.pending.PendingEmail(ctx)
}

func (a *authService) pendingEmail(ctx context.Context) (string, error) {
	email, err := a.pending.PendingEmail(ctx)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", ErrNoPendingVerification
	}
	return email, nil
}

// VerifyOTP confirms the pending address with otp and forgets it on success.
func (a *authService) VerifyOTP(ctx context.Context, otp string) (string, error) {
	email, err := a.pendingEmail(ctx)
	if err != nil {
		return "", err
	}

	form := models.OTPVerification{Email: email, OTP: strings.TrimSpace(otp)}
	if err := validate(form); err != nil {
		return "", err
	}

	msg, err := a.api.VerifyOTP(ctx, form.Email, form.OTP)
	if err != nil {
		return "", err
	}
	if err := a.pending.ClearPendingEmail(ctx); err != nil {
		return msg, fmt.Errorf("forget pending email: %w", err)
	}
	return msg, nil
}

// ResendOTP asks for a fresh code. The pending address is kept.
func (a *authService) ResendOTP(ctx context.Context) (string, error) {
	email, err := a.pendingEmail(ctx)
	if err != nil {
		return "", err
	}
	return a.api.ResendOTP(ctx, email)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
