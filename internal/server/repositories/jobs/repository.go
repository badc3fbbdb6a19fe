package jobs

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	// List returns every posting, newest first.
	List(ctx context.Context) ([]models.Job, error)
}
