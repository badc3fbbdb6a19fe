// Package services contains server-side business logic. This file implements
// UserService: registration with emailed verification codes, login, and the
// member directory and profile operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/dmitrijs2005/alumnet/internal/dbx"
	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/dmitrijs2005/alumnet/internal/server/auth"
	"github.com/dmitrijs2005/alumnet/internal/server/config"
	"github.com/dmitrijs2005/alumnet/internal/server/mailer"
	"github.com/dmitrijs2005/alumnet/internal/server/models"
	"github.com/dmitrijs2005/alumnet/internal/server/otp"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is a test seam.
var passwordCost = bcrypt.DefaultCost

// Registration is the data a new member signs up with.
type Registration struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PassoutYear int
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	codes                 otp.Store
	mailer                mailer.Mailer
	log                   logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codes otp.Store, mail mailer.Mailer,
	log logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		codes:                 codes,
		mailer:                mail,
		log:                   log,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register stores the user unverified and sends a verification code.
// Signing up again with an address that was never verified replaces the
// pending account data and sends a fresh code. It returns the normalized
// email the code went to.
func (s *UserService) Register(ctx context.Context, r Registration) (string, error) {
	email := common.NormalizeEmail(r.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		PassoutYear:  r.PassoutYear,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			_, err = repo.Create(ctx, user)
			return err
		case err != nil:
			return err
		case existing.Verified:
			return common.ErrorAlreadyExists
		}

		user.ID = existing.ID
		return repo.UpdatePending(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	if err := s.sendCode(ctx, email); err != nil {
		return "", err
	}
	return email, nil
}

// VerifyOTP checks the code and marks the account verified.
func (s *UserService) VerifyOTP(ctx context.Context, email, code string) error {
	email = common.NormalizeEmail(email)
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return common.ErrAlreadyVerified
	}

	if err := s.codes.Verify(ctx, email, strings.TrimSpace(code)); err != nil {
		return err
	}

	if err := repo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("error verifying user: %w", err)
	}
	s.log.Info(ctx, "user verified", "user_id", user.ID)
	return nil
}

// ResendOTP issues a new code for an existing unverified account.
func (s *UserService) ResendOTP(ctx context.Context, email string) error {
	email = common.NormalizeEmail(email)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return common.ErrAlreadyVerified
	}
	return s.sendCode(ctx, email)
}

func (s *UserService) sendCode(ctx context.Context, email string) error {
	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("error issuing code: %w", err)
	}
	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("error sending code: %w", err)
	}
	return nil
}

// Login checks the password and returns a bearer token with the user.
// Unknown addresses and wrong passwords both yield ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}
	if !user.Verified {
		return "", nil, common.ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to a user ID.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// Me returns the account behind an authenticated request.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Get returns a member profile. Unverified accounts are not visible.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Verified {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (s *UserService) Directory(ctx context.Context, q models.DirectoryQuery) ([]models.User, error) {
	if q.Limit < 0 {
		q.Limit = 0
	}
	q.Search = strings.TrimSpace(q.Search)
	return s.repomanager.Users(s.db).Directory(ctx, q)
}

// UpdateProfile applies the non-nil changes. Names may not be blanked.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, c models.ProfileChanges) (*models.User, error) {
	for _, name := range []*string{c.FirstName, c.LastName} {
		if name != nil && strings.TrimSpace(*name) == "" {
			return nil, common.ErrorValidation
		}
	}

	repo := s.repomanager.Users(s.db)
	if c.Empty() {
		return repo.GetByID(ctx, userID)
	}
	return repo.UpdateProfile(ctx, userID, c)
}
