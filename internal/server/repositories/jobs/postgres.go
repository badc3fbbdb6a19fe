package jobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/alumnet/internal/dbx"
	"github.com/dmitrijs2005/alumnet/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO jobs (id, title, company, location, description, apply_url, posted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		job.ID, job.Title, job.Company, job.Location, job.Description, job.ApplyURL, job.PostedBy,
	).Scan(&job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Job, error) {
	query :=
		`SELECT id, title, company, location, description, apply_url, posted_by, created_at
		 FROM jobs
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.ApplyURL, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return jobs, nil
}
