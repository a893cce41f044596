// internal/workers/export_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/reports"
)

// ExportConfig controls archive naming and link lifetime
type ExportConfig struct {
	KeyPrefix     string
	PresignExpiry time.Duration
	MaxRows       int
}

// ExportProcessor renders ledger exports and archives them
type ExportProcessor struct {
	reader  ports.LedgerReportReader
	storage ports.ArchiveStorage
	jobs    ports.JobRepository
	config  ExportConfig
	now     func() time.Time
	logger  *slog.Logger
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(reader ports.LedgerReportReader, storage ports.ArchiveStorage, jobs ports.JobRepository, cfg ExportConfig, logger *slog.Logger) *ExportProcessor {
	return &ExportProcessor{
		reader:  reader,
		storage: storage,
		jobs:    jobs,
		config:  cfg,
		now:     time.Now,
		logger:  logger.With(slog.String("processor", "export")),
	}
}

// ProcessExport handles TypeLedgerExport
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var req ports.ExportRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "exporting ledger",
		slog.String("job_id", req.JobID),
		slog.String("format", req.Format))

	renderer, err := reports.ForFormat(req.Format)
	if err != nil {
		p.fail(ctx, req.JobID, err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	_ = p.jobs.UpdateStatus(ctx, req.JobID, ports.JobStatusProcessing, nil)

	rows, err := p.reader.MovementReport(ctx, req)
	if err != nil {
		p.fail(ctx, req.JobID, err)
		return fmt.Errorf("failed to read movement report: %w", err)
	}
	if p.config.MaxRows > 0 && len(rows) > p.config.MaxRows {
		err := fmt.Errorf("export has %d rows, limit is %d", len(rows), p.config.MaxRows)
		p.fail(ctx, req.JobID, err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	generatedAt := p.now().UTC()
	data, err := renderer.Render(rows, reports.Meta{
		Title:       "Stock movement ledger",
		GeneratedAt: generatedAt,
		ProductID:   req.ProductID,
		From:        req.From,
		To:          req.To,
	})
	if err != nil {
		p.fail(ctx, req.JobID, err)
		return fmt.Errorf("failed to render export: %w", err)
	}

	key := path.Join(p.config.KeyPrefix, generatedAt.Format("2006/01/02"),
		fmt.Sprintf("movements-%s.%s", req.JobID, renderer.Extension()))

	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), renderer.ContentType())
	if err != nil {
		p.fail(ctx, req.JobID, err)
		return fmt.Errorf("failed to archive export: %w", err)
	}

	url, err := p.storage.GetPresignedURL(ctx, key, p.config.PresignExpiry)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to sign export link",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	result, _ := json.Marshal(ExportResult{
		Rows:           len(rows),
		Format:         req.Format,
		Key:            key,
		Location:       location,
		DownloadURL:    url,
		ProcessingTime: time.Since(start).String(),
	})
	if err := p.jobs.Complete(ctx, req.JobID, ports.JobStatusCompleted, result); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	p.logger.InfoContext(ctx, "ledger export archived",
		slog.String("job_id", req.JobID),
		slog.String("key", key),
		slog.Int("rows", len(rows)))

	return nil
}

func (p *ExportProcessor) fail(ctx context.Context, jobID string, cause error) {
	msg := cause.Error()
	if err := p.jobs.UpdateStatus(ctx, jobID, ports.JobStatusFailed, &msg); err != nil {
		p.logger.ErrorContext(ctx, "failed to mark job failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
	}
}
