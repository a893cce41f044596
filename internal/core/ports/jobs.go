// internal/core/ports/jobs.go
package ports

import (
	"context"
	"encoding/json"
	"time"
)

// Job tracks a background export or import
type Job struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// Job statuses
const (
	JobStatusPending             = "pending"
	JobStatusProcessing          = "processing"
	JobStatusCompleted           = "completed"
	JobStatusCompletedWithErrors = "completed_with_errors"
	JobStatusFailed              = "failed"
)

// JobRepository persists background job state
type JobRepository interface {
	Create(ctx context.Context, id, jobType string) error
	UpdateStatus(ctx context.Context, id, status string, errMsg *string) error
	Complete(ctx context.Context, id, status string, result json.RawMessage) error
	Get(ctx context.Context, id string) (*Job, error)
}

// ExportRequest asks for a ledger export to be built and archived
type ExportRequest struct {
	JobID     string     `json:"job_id"`
	Format    string     `json:"format"`
	ProductID *int64     `json:"product_id,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}

// ImportRequest asks for a file of movements to be applied row by row.
// Source is "xlsx" or "pdf".
type ImportRequest struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Source   string `json:"source"`
	Notes    string `json:"notes,omitempty"`
}

// JobScheduler hands long-running work to background workers
type JobScheduler interface {
	ScheduleExport(ctx context.Context, req ExportRequest) error
	ScheduleImport(ctx context.Context, req ImportRequest) error
}
