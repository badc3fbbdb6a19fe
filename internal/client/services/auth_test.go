package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/router"
	"github.com/dmitrijs2005/alumnet/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration() models.Registration {
	return models.Registration{
		Email:           "Ada@Example.com ",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       " Ada ",
		LastName:        "Lovelace",
		PassoutYear:     2020,
	}
}

func newAuth() (*authService, *fakeClient, *memPending, *fakeSession) {
	api := &fakeClient{registerRes: &models.RegistrationResult{Message: "OTP sent"}}
	sess := &fakeSession{api: api}
	pending := &memPending{}
	return NewAuthService(sess, api, pending).(*authService), api, pending, sess
}

func TestRegister_InvalidFormNeverReachesNetwork(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Registration)
		msg    string
	}{
		{name: "mismatched", mutate: func(r *models.Registration) { r.ConfirmPassword = "other1" }, msg: "Passwords do not match"},
		{name: "too short", mutate: func(r *models.Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }, msg: "at least 6"},
		{name: "missing last name", mutate: func(r *models.Registration) { r.LastName = " " }, msg: "Last name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, pending, _ := newAuth()
			r := registration()
			tt.mutate(&r)

			_, err := svc.Register(context.Background(), r)
			require.ErrorIs(t, err, client.ErrValidation)
			require.ErrorIs(t, err, models.ErrInvalidForm)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Zero(t, api.callCount(), "no request may be issued")
			assert.Empty(t, pending.email)
		})
	}
}

func TestRegister_StoresPendingEmail(t *testing.T) {
	svc, api, pending, _ := newAuth()

	res, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)

	assert.Equal(t, "OTP sent", res.Message)
	assert.Equal(t, "ada@example.com", pending.email)
	assert.Equal(t, "ada@example.com", api.lastRegister.Email)
	assert.Equal(t, "Ada", api.lastRegister.FirstName)
}

func TestRegister_ReplacesPendingEmail(t *testing.T) {
	svc, _, pending, _ := newAuth()
	pending.email = "old@x.io"

	_, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", pending.email)
}

func TestRegister_ServerRejection(t *testing.T) {
	svc, api, pending, _ := newAuth()
	api.registerErr = &client.APIError{Status: 409, Message: "User already exists", Err: client.ErrValidation}

	_, err := svc.Register(context.Background(), registration())
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Empty(t, pending.email)
}

func TestVerifyOTP(t *testing.T) {
	t.Run("without pending email", func(t *testing.T) {
		svc, api, _, _ := newAuth()

		_, err := svc.VerifyOTP(context.Background(), "123456")
		require.ErrorIs(t, err, ErrNoPendingVerification)
		assert.Zero(t, api.callCount())
	})

	t.Run("bad code format", func(t *testing.T) {
		svc, api, pending, _ := newAuth()
		pending.email = "a@b.com"

		_, err := svc.VerifyOTP(context.Background(), "12")
		require.ErrorIs(t, err, client.ErrValidation)
		assert.Zero(t, api.callCount())
		assert.Equal(t, "a@b.com", pending.email)
	})

	t.Run("success clears pending", func(t *testing.T) {
		svc, api, pending, _ := newAuth()
		pending.email = "a@b.com"
		api.verifyMsg = "Email verified successfully"

		msg, err := svc.VerifyOTP(context.Background(), " 123456 ")
		require.NoError(t, err)

		assert.Equal(t, "Email verified successfully", msg)
		assert.Equal(t, "a@b.com", api.lastVerifyEmail)
		assert.Equal(t, "123456", api.lastVerifyOTP)
		assert.Empty(t, pending.email)
	})

	t.Run("rejected code keeps pending", func(t *testing.T) {
		svc, api, pending, _ := newAuth()
		pending.email = "a@b.com"
		api.verifyErr = &client.APIError{Status: 400, Message: "Invalid OTP", Err: client.ErrValidation}

		_, err := svc.VerifyOTP(context.Background(), "000000")
		require.Error(t, err)
		assert.Equal(t, "a@b.com", pending.email)
	})
}

func TestResendOTP_KeepsPending(t *testing.T) {
	svc, api, pending, _ := newAuth()
	pending.email = "a@b.com"
	api.resendMsg = "OTP resent"

	msg, err := svc.ResendOTP(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "OTP resent", msg)
	assert.Equal(t, "a@b.com", api.lastResendEmail)
	assert.Equal(t, "a@b.com", pending.email)
}

func TestLogin_ValidatesLocally(t *testing.T) {
	svc, api, _, sess := newAuth()

	_, err := svc.Login(context.Background(), "not-an-email", "x")
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Zero(t, api.callCount())

	id, err := svc.Login(context.Background(), " a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", id.Email)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, sess.logouts)
}

func TestPing(t *testing.T) {
	svc, api, _, _ := newAuth()
	api.pingErr = client.ErrUnavailable

	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}

type tokenSlot struct{ token string }

func (s *tokenSlot) Token(context.Context) (string, error) { return s.token, nil }
func (s *tokenSlot) SetToken(_ context.Context, t string) error { s.token = t; return nil }
func (s *tokenSlot) ClearToken(context.Context) error { s.token = ""; return nil }

func TestRegisterThenProtectedRouteStillRedirectsToLogin(t *testing.T) {
	api := &fakeClient{registerRes: &models.RegistrationResult{Message: "OTP sent", Email: "ada@example.com"}}
	cred := &client.Credential{}
	store := &tokenSlot{}
	mgr := session.New(api, store, cred, session.WithTimeout(time.Second))
	require.NoError(t, mgr.Bootstrap(context.Background()))

	pending := &memPending{}
	svc := NewAuthService(mgr, api, pending)

	_, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)

	route, err := router.New(mgr).Resolve(context.Background(), router.PathHome)
	require.NoError(t, err)

	assert.Equal(t, router.ScreenLogin, route.Screen)
	assert.Equal(t, session.Anonymous, mgr.State())
	assert.Empty(t, store.token)
	assert.False(t, cred.Active())
	assert.Equal(t, "ada@example.com", pending.email)
}

func TestRegister_PendingStoreFailure(t *testing.T) {
	svc, _, pending, _ := newAuth()
	pending.setErr = errors.New("disk full")

	_, err := svc.Register(context.Background(), registration())
	require.Error(t, err)
}
