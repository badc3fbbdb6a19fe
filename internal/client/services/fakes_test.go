package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	// inputs captured
	lastVerifyEmail string
	lastVerifyOTP   string
	lastResendEmail string
	lastQuery       client.DirectoryQuery
	lastUserID      string
	lastUpdate      models.ProfileUpdate
	lastJob         models.NewJob
	lastRegister    models.Registration

	// outputs preset
	pingErr     error
	meUser      *models.Identity
	meErr       error
	loginToken  string
	loginUser   *models.Identity
	loginErr    error
	registerRes *models.RegistrationResult
	registerErr error
	verifyMsg   string
	verifyErr   error
	resendMsg   string
	resendErr   error
	users       []models.Identity
	usersErr    error
	user        *models.Identity
	userErr     error
	updateMsg   string
	updateUser  *models.Identity
	updateErr   error
	jobs        []models.JobPosting
	jobsErr     error
	createMsg   string
	createJob   *models.JobPosting
	createErr   error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.record("ping")
	return f.pingErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) {
	f.record("me")
	return f.meUser, f.meErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	f.record("login")
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	f.record("register")
	f.lastRegister = r
	return f.registerRes, f.registerErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	f.record("verify")
	f.lastVerifyEmail, f.lastVerifyOTP = email, otp
	return f.verifyMsg, f.verifyErr
}

func (f *fakeClient) ResendOTP(ctx context.Context, email string) (string, error) {
	f.record("resend")
	f.lastResendEmail = email
	return f.resendMsg, f.resendErr
}

func (f *fakeClient) Directory(ctx context.Context, q client.DirectoryQuery) ([]models.Identity, error) {
	f.record("directory")
	f.mu.Lock()
	f.lastQuery = q
	f.mu.Unlock()
	return f.users, f.usersErr
}

func (f *fakeClient) User(ctx context.Context, id string) (*models.Identity, error) {
	f.record("user")
	f.lastUserID = id
	return f.user, f.userErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (string, *models.Identity, error) {
	f.record("update")
	f.lastUpdate = u
	return f.updateMsg, f.updateUser, f.updateErr
}

func (f *fakeClient) Jobs(ctx context.Context) ([]models.JobPosting, error) {
	f.record("jobs")
	return f.jobs, f.jobsErr
}

func (f *fakeClient) CreateJob(ctx context.Context, j models.NewJob) (string, *models.JobPosting, error) {
	f.record("create-job")
	f.lastJob = j
	return f.createMsg, f.createJob, f.createErr
}

type fakeSession struct {
	identity   *models.Identity
	refreshed  *models.Identity
	refreshErr error
	loginErr   error
	logouts    int
	api        *fakeClient
}

func (s *fakeSession) Login(ctx context.Context, email, password string) (models.Identity, error) {
	if s.loginErr != nil {
		return models.Identity{}, s.loginErr
	}
	s.identity = &models.Identity{ID: "1", Email: email}
	return *s.identity, nil
}

func (s *fakeSession) Logout(ctx context.Context) error {
	s.logouts++
	s.identity = nil
	return nil
}

func (s *fakeSession) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	return s.api.Register(ctx, r)
}

func (s *fakeSession) Refresh(ctx context.Context) (models.Identity, error) {
	if s.refreshErr != nil {
		return models.Identity{}, s.refreshErr
	}
	s.identity = s.refreshed
	return *s.refreshed, nil
}

func (s *fakeSession) Identity() (models.Identity, bool) {
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

type memPending struct {
	email  string
	setErr error
}

func (m *memPending) PendingEmail(context.Context) (string, error) { return m.email, nil }

func (m *memPending) SetPendingEmail(_ context.Context, email string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.email = email
	return nil
}

func (m *memPending) ClearPendingEmail(context.Context) error {
	m.email = ""
	return nil
}
