package users

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdatePending rewrites the registration data of an unverified user.
	UpdatePending(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) (*models.User, error)
	// Directory lists verified users, newest class first.
	Directory(ctx context.Context, q models.DirectoryQuery) ([]models.User, error)
}
