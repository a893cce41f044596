// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

const (
	TypeMovementRecorded   = "ledger:movement_recorded"
	TypeStatusChanged      = "ledger:status_changed"
	TypeLedgerExport       = "ledger:export"
	TypeImportXLSX         = "movements:import_xlsx"
	TypeImportDeliveryNote = "movements:import_delivery_note"
	TypeSendNotification   = "notification:send"
	TypeCleanupTempFiles   = "cleanup:temp_files"
)

// Queue names; priorities come from ASYNQ_QUEUES
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// NotificationKind tags what an alert is about
type NotificationKind string

const (
	NotificationLowStock         NotificationKind = "low_stock"
	NotificationMovementRejected NotificationKind = "movement_rejected"
	NotificationAutoDiscontinued NotificationKind = "auto_discontinued"
	NotificationImportFinished   NotificationKind = "import_finished"
)

// NotificationPayload is one outbound stock alert
type NotificationPayload struct {
	Kind      NotificationKind `json:"kind"`
	ProductID *int64           `json:"product_id,omitempty"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
}

// ImportResult is stored on the job once an import finishes
type ImportResult struct {
	Rows           int      `json:"rows"`
	Applied        int      `json:"applied"`
	Rejected       int      `json:"rejected"`
	Errors         []string `json:"errors,omitempty"`
	ProcessingTime string   `json:"processing_time"`
}

// ExportResult is stored on the job once an export is archived
type ExportResult struct {
	Rows           int    `json:"rows"`
	Format         string `json:"format"`
	Key            string `json:"key"`
	Location       string `json:"location"`
	DownloadURL    string `json:"download_url"`
	ProcessingTime string `json:"processing_time"`
}

// NewMovementRecordedTask wraps a committed movement record
func NewMovementRecordedTask(rec *domain.MovementRecord) (*asynq.Task, error) {
	return newTask(TypeMovementRecorded, rec, asynq.Queue(QueueDefault), asynq.MaxRetry(5))
}

// NewStatusChangedTask wraps a committed status-change record
func NewStatusChangedTask(rec *domain.StatusChangeRecord) (*asynq.Task, error) {
	return newTask(TypeStatusChanged, rec, asynq.Queue(QueueDefault), asynq.MaxRetry(5))
}

// NewExportTask builds a ledger export task keyed by its job id
func NewExportTask(req ports.ExportRequest) (*asynq.Task, error) {
	return newTask(TypeLedgerExport, req,
		asynq.Queue(QueueLow),
		asynq.TaskID(req.JobID),
		asynq.Timeout(10*time.Minute),
		asynq.MaxRetry(3))
}

// NewImportTask builds an import task for the request's source format
func NewImportTask(req ports.ImportRequest) (*asynq.Task, error) {
	var taskType string
	switch req.Source {
	case "xlsx":
		taskType = TypeImportXLSX
	case "pdf":
		taskType = TypeImportDeliveryNote
	default:
		return nil, fmt.Errorf("unsupported import source %q", req.Source)
	}
	return newTask(taskType, req,
		asynq.Queue(QueueDefault),
		asynq.TaskID(req.JobID),
		asynq.Timeout(10*time.Minute),
		asynq.MaxRetry(1))
}

// NewNotificationTask builds a notification task
func NewNotificationTask(n NotificationPayload) (*asynq.Task, error) {
	return newTask(TypeSendNotification, n, asynq.Queue(QueueLow), asynq.MaxRetry(3))
}

// NewCleanupTempFilesTask builds the periodic scratch cleanup task
func NewCleanupTempFilesTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupTempFiles, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}

func newTask(taskType string, payload any, opts ...asynq.Option) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data, opts...), nil
}
