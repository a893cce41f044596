// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/stock-ledger/internal/adapters/redis_adapter"
	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

const (
	importLockTTL = 30 * time.Minute
	maxJobErrors  = 100
)

// ImportProcessor applies uploaded movement files row by row through the
// stock movement engine, so every row leaves its own ledger entry
type ImportProcessor struct {
	engine   ports.StockMovementService
	jobs     ports.JobRepository
	locks    ports.CacheRepository
	notifier Notifier
	tempDir  string
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor. Files under tempDir
// are removed once processed.
func NewImportProcessor(engine ports.StockMovementService, jobs ports.JobRepository, locks ports.CacheRepository, notifier Notifier, tempDir string, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		engine:   engine,
		jobs:     jobs,
		locks:    locks,
		notifier: notifier,
		tempDir:  tempDir,
		logger:   logger.With(slog.String("processor", "import")),
	}
}

// ProcessXLSX handles TypeImportXLSX
func (p *ImportProcessor) ProcessXLSX(ctx context.Context, t *asynq.Task) error {
	return p.process(ctx, t, ParseMovementSheet)
}

// ProcessDeliveryNote handles TypeImportDeliveryNote
func (p *ImportProcessor) ProcessDeliveryNote(ctx context.Context, t *asynq.Task) error {
	return p.process(ctx, t, ParseDeliveryNote)
}

func (p *ImportProcessor) process(ctx context.Context, t *asynq.Task, parse func(string) ([]ImportRow, error)) error {
	start := time.Now()

	var req ports.ImportRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	// Rows are not idempotent, so a redelivered task must not run twice
	lockKey := redis_a.BuildKey(redis_a.PrefixLock, "import", req.JobID)
	acquired, err := p.locks.SetNX(ctx, lockKey, time.Now().Unix(), importLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !acquired {
		return p.resumeCompletion(ctx, req.JobID)
	}

	p.logger.InfoContext(ctx, "processing import",
		slog.String("job_id", req.JobID),
		slog.String("source", req.Source),
		slog.String("file_path", req.FilePath))

	p.updateJobStatus(ctx, req.JobID, ports.JobStatusProcessing, nil)
	defer p.removeTempFile(ctx, req.FilePath)

	rows, err := parse(req.FilePath)
	if err != nil {
		msg := err.Error()
		p.updateJobStatus(ctx, req.JobID, ports.JobStatusFailed, &msg)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	result := p.applyRows(ctx, req, rows)
	result.ProcessingTime = time.Since(start).String()

	status := ports.JobStatusCompleted
	if len(result.Errors) > 0 {
		status = ports.JobStatusCompletedWithErrors
	}

	resultJSON, _ := json.Marshal(result)
	if err := p.jobs.Complete(ctx, req.JobID, status, resultJSON); err != nil {
		// The rows are ledgered; a retry must only finish the job record
		pending := pendingCompletion{Status: status, Result: resultJSON}
		if perr := p.locks.SetWithTTL(ctx, pendingCompletionKey(req.JobID), pending, importLockTTL); perr != nil {
			p.logger.ErrorContext(ctx, "failed to keep pending import completion",
				slog.String("job_id", req.JobID),
				slog.String("error", perr.Error()))
		}
		return fmt.Errorf("failed to complete job: %w", err)
	}

	p.logger.InfoContext(ctx, "import completed",
		slog.String("job_id", req.JobID),
		slog.Int("rows", result.Rows),
		slog.Int("applied", result.Applied),
		slog.Int("rejected", result.Rejected))

	if p.notifier != nil {
		n := NotificationPayload{
			Kind:    NotificationImportFinished,
			Subject: fmt.Sprintf("Movement import %s finished", req.JobID),
			Body: fmt.Sprintf("%d rows read, %d applied, %d rejected",
				result.Rows, result.Applied, result.Rejected),
		}
		if err := p.notifier.Notify(ctx, n); err != nil {
			p.logger.WarnContext(ctx, "failed to queue import notification",
				slog.String("error", err.Error()))
		}
	}

	return nil
}

func (p *ImportProcessor) applyRows(ctx context.Context, req ports.ImportRequest, rows []ImportRow) ImportResult {
	result := ImportResult{Rows: len(rows)}

	addError := func(line int, msg string) {
		if len(result.Errors) < maxJobErrors {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, msg))
		}
	}

	for _, row := range rows {
		if row.Err != nil {
			result.Rejected++
			addError(row.Line, row.Err.Error())
			continue
		}

		_, err := p.engine.ApplyMovement(ctx, ports.ApplyMovementCommand{
			ProductID: row.ProductID,
			Kind:      row.Kind,
			Amount:    row.Amount,
			Notes:     importNotes(req, row),
		})

		if err == nil {
			result.Applied++
			continue
		}

		result.Rejected++
		addError(row.Line, err.Error())

		var rejected *domain.MovementRejectedError
		if !errors.As(err, &rejected) && !errors.Is(err, domain.ErrInvalidMovement) {
			p.logger.ErrorContext(ctx, "import row failed",
				slog.String("job_id", req.JobID),
				slog.Int("line", row.Line),
				slog.String("error", err.Error()))
		}
	}

	return result
}

func importNotes(req ports.ImportRequest, row ImportRow) string {
	parts := []string{fmt.Sprintf("import %s line %d", req.JobID, row.Line)}
	if req.Notes != "" {
		parts = append(parts, req.Notes)
	}
	if row.Notes != "" {
		parts = append(parts, row.Notes)
	}
	notes := strings.Join(parts, "; ")
	if r := []rune(notes); len(r) > domain.MaxMessageLength {
		notes = string(r[:domain.MaxMessageLength])
	}
	return notes
}

// pendingCompletion is a finished import whose job record could not be written
type pendingCompletion struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

func pendingCompletionKey(jobID string) string {
	return redis_a.BuildKey(redis_a.PrefixLock, "import", jobID, "completion")
}

// resumeCompletion runs when the import lock is already held. A redelivered
// task whose rows were applied only retries the job completion.
func (p *ImportProcessor) resumeCompletion(ctx context.Context, jobID string) error {
	var pending pendingCompletion
	err := p.locks.Get(ctx, pendingCompletionKey(jobID), &pending)
	if errors.Is(err, redis_a.ErrCacheMiss) {
		p.logger.WarnContext(ctx, "import already running or finished, skipping",
			slog.String("job_id", jobID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read pending import completion: %w", err)
	}

	if err := p.jobs.Complete(ctx, jobID, pending.Status, pending.Result); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	if err := p.locks.Delete(ctx, pendingCompletionKey(jobID)); err != nil {
		p.logger.WarnContext(ctx, "failed to drop pending import completion",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
	}

	p.logger.InfoContext(ctx, "import completion recovered",
		slog.String("job_id", jobID),
		slog.String("status", pending.Status))
	return nil
}

func (p *ImportProcessor) updateJobStatus(ctx context.Context, jobID, status string, msg *string) {
	if err := p.jobs.UpdateStatus(ctx, jobID, status, msg); err != nil {
		p.logger.WarnContext(ctx, "failed to update import job status",
			slog.String("job_id", jobID),
			slog.String("status", status),
			slog.String("error", err.Error()))
	}
}

func (p *ImportProcessor) removeTempFile(ctx context.Context, path string) {
	if p.tempDir == "" {
		return
	}
	rel, err := filepath.Rel(p.tempDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.WarnContext(ctx, "failed to remove import file",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}
}
