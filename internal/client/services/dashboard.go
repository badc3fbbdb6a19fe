package services

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardAlumniLimit = 10
	dashboardJobsShown   = 5
)

// Dashboard is the landing screen's data.
type Dashboard struct {
	Me          models.Identity
	Alumni      []models.Identity
	RecentJobs  []models.JobPosting
	TotalAlumni int
	ActiveJobs  int
}

type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	session Session
	api     client.Client
}

func NewDashboardService(session Session, api client.Client) DashboardService {
	return &dashboardService{session: session, api: api}
}

// Load fetches the directory sample and the job list concurrently. Either
// failure fails the whole load.
func (d *dashboardService) Load(ctx context.Context) (*Dashboard, error) {
	me, ok := d.session.Identity()
	if !ok {
		return nil, client.ErrUnauthorized
	}

	var (
		alumni []models.Identity
		jobs   []models.JobPosting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		alumni, err = d.api.Directory(gctx, client.DirectoryQuery{Limit: dashboardAlumniLimit})
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = d.api.Jobs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recent := jobs
	if len(recent) > dashboardJobsShown {
		recent = recent[:dashboardJobsShown]
	}

	return &Dashboard{
		Me:          me,
		Alumni:      alumni,
		RecentJobs:  recent,
		TotalAlumni: len(alumni),
		ActiveJobs:  len(jobs),
	}, nil
}
