// internal/workers/publisher.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// TaskEnqueuer is the part of *asynq.Client the publisher needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqPublisher turns ledger events and job requests into asynq tasks
type AsynqPublisher struct {
	client TaskEnqueuer
	jobs   ports.JobRepository
	logger *slog.Logger
}

var (
	_ ports.LedgerEventPublisher = (*AsynqPublisher)(nil)
	_ ports.JobScheduler         = (*AsynqPublisher)(nil)
	_ TaskEnqueuer               = (*asynq.Client)(nil)
)

// NewAsynqPublisher creates a publisher. jobs may be nil when only events are published.
func NewAsynqPublisher(client TaskEnqueuer, jobs ports.JobRepository, logger *slog.Logger) *AsynqPublisher {
	return &AsynqPublisher{
		client: client,
		jobs:   jobs,
		logger: logger.With(slog.String("component", "task_publisher")),
	}
}

// PublishMovementRecorded enqueues follow-up work for a committed movement record
func (p *AsynqPublisher) PublishMovementRecorded(ctx context.Context, rec *domain.MovementRecord) error {
	task, err := NewMovementRecordedTask(rec)
	if err != nil {
		return err
	}
	return p.enqueue(ctx, task)
}

// PublishStatusChanged enqueues follow-up work for a committed status change
func (p *AsynqPublisher) PublishStatusChanged(ctx context.Context, rec *domain.StatusChangeRecord) error {
	task, err := NewStatusChangedTask(rec)
	if err != nil {
		return err
	}
	return p.enqueue(ctx, task)
}

// ScheduleExport records a pending job and enqueues the export
func (p *AsynqPublisher) ScheduleExport(ctx context.Context, req ports.ExportRequest) error {
	task, err := NewExportTask(req)
	if err != nil {
		return err
	}
	return p.schedule(ctx, req.JobID, task)
}

// ScheduleImport records a pending job and enqueues the import
func (p *AsynqPublisher) ScheduleImport(ctx context.Context, req ports.ImportRequest) error {
	task, err := NewImportTask(req)
	if err != nil {
		return err
	}
	return p.schedule(ctx, req.JobID, task)
}

// Notify enqueues an outbound alert
func (p *AsynqPublisher) Notify(ctx context.Context, n NotificationPayload) error {
	task, err := NewNotificationTask(n)
	if err != nil {
		return err
	}
	return p.enqueue(ctx, task)
}

func (p *AsynqPublisher) schedule(ctx context.Context, jobID string, task *asynq.Task) error {
	if p.jobs == nil {
		return fmt.Errorf("job repository not configured")
	}
	if err := p.jobs.Create(ctx, jobID, task.Type()); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	if err := p.enqueue(ctx, task); err != nil {
		msg := err.Error()
		if uerr := p.jobs.UpdateStatus(ctx, jobID, ports.JobStatusFailed, &msg); uerr != nil {
			p.logger.ErrorContext(ctx, "failed to mark job failed",
				slog.String("job_id", jobID),
				slog.String("error", uerr.Error()))
		}
		return err
	}
	return nil
}

func (p *AsynqPublisher) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := p.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}

	p.logger.DebugContext(ctx, "task enqueued",
		slog.String("type", task.Type()),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}
