package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/dmitrijs2005/alumnet/internal/server/models"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/repomanager"
)

// JobService runs the job board.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager) *JobService {
	return &JobService{db: db, repomanager: m}
}

func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return s.repomanager.Jobs(s.db).List(ctx)
}

// Create posts a job on behalf of userID. Title and company are required.
func (s *JobService) Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" || job.Company == "" {
		return nil, common.ErrorValidation
	}

	job.PostedBy = userID
	return s.repomanager.Jobs(s.db).Create(ctx, job)
}
