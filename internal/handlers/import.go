// internal/handlers/import.go
package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// ImportLimits bounds uploaded import files by source, in bytes
type ImportLimits struct {
	XLSXMaxBytes int64
	PDFMaxBytes  int64
}

func (l ImportLimits) max() int64 {
	return max(l.XLSXMaxBytes, l.PDFMaxBytes)
}

func (l ImportLimits) forSource(source string) int64 {
	if source == "pdf" {
		return l.PDFMaxBytes
	}
	return l.XLSXMaxBytes
}

// ImportHandler accepts movement files and queues them for the workers
type ImportHandler struct {
	responder
	scheduler ports.JobScheduler
	limits    ImportLimits
	uploadDir string
}

// NewImportHandler creates a new import handler
func NewImportHandler(scheduler ports.JobScheduler, limits ImportLimits, uploadDir string, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "import"))},
		scheduler: scheduler,
		limits:    limits,
		uploadDir: uploadDir,
	}
}

// ImportMovements handles POST /api/v1/stock/imports.
// The multipart form carries a file (.xlsx movement sheet or .pdf delivery
// note) and optional notes applied to every row.
func (h *ImportHandler) ImportMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.limits.max()+1<<20)
	if err := r.ParseMultipartForm(h.limits.max()); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	source, err := importSource(header.Filename)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit := h.limits.forSource(source); limit > 0 && header.Size > limit {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("%s files are limited to %d MB", source, limit>>20))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	jobID := uuid.New().String()
	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", jobID, filepath.Base(header.Filename)))
	if err := saveUpload(path, file); err != nil {
		h.logger.ErrorContext(ctx, "failed to save upload",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	req := ports.ImportRequest{
		JobID:    jobID,
		FilePath: path,
		Source:   source,
		Notes:    strings.TrimSpace(r.FormValue("notes")),
	}
	if err := h.scheduler.ScheduleImport(ctx, req); err != nil {
		os.Remove(path)
		h.logger.ErrorContext(ctx, "failed to schedule import",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "movement import queued",
		slog.String("job_id", jobID),
		slog.String("source", source),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id":  jobID,
		"status":  ports.JobStatusPending,
		"source":  source,
		"message": "Movement import has been queued for processing",
	})
}

func importSource(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "xlsx", nil
	case ".pdf":
		return "pdf", nil
	default:
		return "", fmt.Errorf("only .xlsx movement sheets and .pdf delivery notes are accepted")
	}
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}
