package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

type JobService interface {
	List(ctx context.Context) ([]models.JobPosting, error)
	Post(ctx context.Context, j models.NewJob) (string, *models.JobPosting, error)
}

type jobService struct {
	api client.Client
}

func NewJobService(api client.Client) JobService {
	return &jobService{api: api}
}

func (s *jobService) List(ctx context.Context) ([]models.JobPosting, error) {
	return s.api.Jobs(ctx)
}

func (s *jobService) Post(ctx context.Context, j models.NewJob) (string, *models.JobPosting, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	j.ApplyURL = strings.TrimSpace(j.ApplyURL)
	if err := validate(j); err != nil {
		return "", nil, err
	}
	return s.api.CreateJob(ctx, j)
}
