package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/dmitrijs2005/alumnet/internal/dbx"
	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/dmitrijs2005/alumnet/internal/server/config"
	"github.com/dmitrijs2005/alumnet/internal/server/models"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fastHashing(t *testing.T) {
	t.Helper()
	orig := passwordCost
	passwordCost = bcrypt.MinCost
	t.Cleanup(func() { passwordCost = orig })
}

func hashOf(t *testing.T, password string) []byte {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

// --- fake repositories ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	nextID  int

	getErr    error
	createErr error
	updErr    error

	pendingUpdates int
	lastQuery      models.DirectoryQuery
	lastChanges    models.ProfileChanges
}

func newFakeUsersRepo(existing ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	for _, u := range existing {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdatePending(_ context.Context, u *models.User) error {
	f.pendingUpdates++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsersRepo) MarkVerified(ctx context.Context, id string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Verified = true
	return nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id string, c models.ProfileChanges) (*models.User, error) {
	f.lastChanges = c
	if f.updErr != nil {
		return nil, f.updErr
	}
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Headline != nil {
		u.Headline = *c.Headline
	}
	if c.FirstName != nil {
		u.FirstName = *c.FirstName
	}
	return u, nil
}

func (f *fakeUsersRepo) Directory(_ context.Context, q models.DirectoryQuery) ([]models.User, error) {
	f.lastQuery = q
	out := []models.User{}
	for _, u := range f.byEmail {
		if u.Verified {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeJobsRepo struct {
	created []*models.Job
	list    []models.Job
	err     error
}

func (f *fakeJobsRepo) Create(_ context.Context, j *models.Job) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	j.ID = "j1"
	f.created = append(f.created, j)
	return j, nil
}

func (f *fakeJobsRepo) List(context.Context) ([]models.Job, error) {
	return f.list, f.err
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	jobs  *fakeJobsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.users }
func (m *fakeRepoManager) Jobs(dbx.DBTX) jobs.Repository               { return m.jobs }

// --- fake otp store and mailer ---

type fakeCodes struct {
	issued    map[string]string
	issueErr  error
	verifyErr error
	verified  []string
}

func (f *fakeCodes) Issue(_ context.Context, email string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	if f.issued == nil {
		f.issued = map[string]string{}
	}
	f.issued[email] = "123456"
	return "123456", nil
}

func (f *fakeCodes) Verify(_ context.Context, email, code string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	if f.issued[email] != code {
		return common.ErrInvalidOTP
	}
	f.verified = append(f.verified, email)
	delete(f.issued, email)
	return nil
}

func (f *fakeCodes) Clear(_ context.Context, email string) error {
	delete(f.issued, email)
	return nil
}

type sentMail struct{ email, code string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendOTP(_ context.Context, email, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{email, code})
	return nil
}

type userFixture struct {
	svc    *UserService
	mock   sqlmock.Sqlmock
	users  *fakeUsersRepo
	codes  *fakeCodes
	mailer *fakeMailer
}

func newUserFixture(t *testing.T, existing ...*models.User) *userFixture {
	t.Helper()
	fastHashing(t)

	db, mock := newSQLMockDB(t)
	f := &userFixture{
		mock:   mock,
		users:  newFakeUsersRepo(existing...),
		codes:  &fakeCodes{},
		mailer: &fakeMailer{},
	}
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	f.svc = NewUserService(db, &fakeRepoManager{users: f.users, jobs: &fakeJobsRepo{}}, f.codes, f.mailer, logging.Nop{}, cfg)
	return f
}
