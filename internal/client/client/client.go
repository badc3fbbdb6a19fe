package client

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// Client is the alumni network API as seen by the terminal client.
type Client interface {
	Ping(ctx context.Context) error

	Me(ctx context.Context) (*models.Identity, error)
	Login(ctx context.Context, email, password string) (string, *models.Identity, error)
	Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email string) (string, error)

	Directory(ctx context.Context, q DirectoryQuery) ([]models.Identity, error)
	User(ctx context.Context, id string) (*models.Identity, error)
	UpdateProfile(ctx context.Context, u models.ProfileUpdate) (string, *models.Identity, error)

	Jobs(ctx context.Context) ([]models.JobPosting, error)
	CreateJob(ctx context.Context, j models.NewJob) (string, *models.JobPosting, error)
}

// DirectoryQuery selects directory members. Zero values are not sent.
type DirectoryQuery struct {
	Limit  int
	Search string
}
