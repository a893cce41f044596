// internal/adapters/db/job_repository.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// JobRepository tracks export and import jobs in async_jobs
type JobRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a job repository over q
func NewJobRepository(q Querier, logger *slog.Logger) *JobRepository {
	return &JobRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "jobs")),
	}
}

// Create registers a pending job
func (r *JobRepository) Create(ctx context.Context, id, jobType string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO async_jobs (id, type, status) VALUES ($1, $2, $3)`,
		id, jobType, ports.JobStatusPending)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// UpdateStatus moves a job to status, recording errMsg when set
func (r *JobRepository) UpdateStatus(ctx context.Context, id, status string, errMsg *string) error {
	query := `
		UPDATE async_jobs
		SET status = $2, error = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id, status, errMsg); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return nil
}

// Complete finishes a job with its result document
func (r *JobRepository) Complete(ctx context.Context, id, status string, result json.RawMessage) error {
	query := `
		UPDATE async_jobs
		SET status = $2, result = $3, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id, status, []byte(result)); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

// Get retrieves a job by id
func (r *JobRepository) Get(ctx context.Context, id string) (*ports.Job, error) {
	var (
		job    ports.Job
		result []byte
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, type, status, result, error, created_at, updated_at, completed_at
		FROM async_jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.Type, &job.Status, &result, &job.Error,
		&job.CreatedAt, &job.UpdatedAt, &job.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: job %s", domain.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if len(result) > 0 {
		job.Result = json.RawMessage(result)
	}
	return &job, nil
}
