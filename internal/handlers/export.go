// internal/handlers/export.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/reports"
)

// ExportHandler serves ledger exports, either inline or as archived jobs
type ExportHandler struct {
	responder
	reader    ports.LedgerReportReader
	scheduler ports.JobScheduler
	jobs      ports.JobRepository
	maxRows   int
}

// NewExportHandler creates a new export handler
func NewExportHandler(reader ports.LedgerReportReader, scheduler ports.JobScheduler, jobs ports.JobRepository, maxRows int, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "export"))},
		reader:    reader,
		scheduler: scheduler,
		jobs:      jobs,
		maxRows:   maxRows,
	}
}

// ExportRequestBody is the body of POST /ledger/exports
type ExportRequestBody struct {
	Format    string     `json:"format"`
	ProductID *int64     `json:"product_id,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}

// ExportLedger handles GET /api/v1/ledger/export?format=xlsx|pdf
func (h *ExportHandler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.parseExportQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderer, err := reports.ForFormat(req.Format)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.reader.MovementReport(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read ledger report",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}
	if h.maxRows > 0 && len(rows) > h.maxRows {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("export has %d rows, limit is %d; narrow the range or use an archived export", len(rows), h.maxRows))
		return
	}

	now := time.Now().UTC()
	data, err := renderer.Render(rows, reports.Meta{
		Title:       "Stock movement ledger",
		GeneratedAt: now,
		ProductID:   req.ProductID,
		From:        req.From,
		To:          req.To,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render ledger export",
			slog.String("format", req.Format),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := fmt.Sprintf("ledger_export_%s.%s", now.Format("20060102_150405"), renderer.Extension())
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write export response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "ledger export completed",
		slog.String("format", req.Format),
		slog.Int("rows", len(rows)),
		slog.String("filename", filename))
}

// ScheduleExport handles POST /api/v1/ledger/exports
func (h *ExportHandler) ScheduleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body ExportRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Format == "" {
		body.Format = reports.FormatXLSX
	}
	if _, err := reports.ForFormat(body.Format); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := ports.ExportRequest{
		JobID:     uuid.New().String(),
		Format:    body.Format,
		ProductID: body.ProductID,
		From:      body.From,
		To:        body.To,
	}

	if err := h.scheduler.ScheduleExport(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "failed to schedule export",
			slog.String("job_id", req.JobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id":  req.JobID,
		"status":  ports.JobStatusPending,
		"message": "Ledger export has been queued for processing",
	})
}

// JobStatus handles GET /api/v1/jobs/{id}
func (h *ExportHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to retrieve job")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}

func (h *ExportHandler) parseExportQuery(r *http.Request) (ports.ExportRequest, error) {
	req := ports.ExportRequest{Format: r.URL.Query().Get("format")}
	if req.Format == "" {
		req.Format = reports.FormatXLSX
	}

	var err error
	if req.ProductID, err = optionalProductID(r); err != nil {
		return req, err
	}
	if req.From, err = optionalTime(r, "from"); err != nil {
		return req, err
	}
	if req.To, err = optionalTime(r, "to"); err != nil {
		return req, err
	}
	return req, nil
}
