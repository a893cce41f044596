package workers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/workers"
	"github.com/ammerola/stock-ledger/test/helpers"
	"github.com/ammerola/stock-ledger/test/mocks"
)

func reportRows() []ports.LedgerReportRow {
	productID := int64(1)
	prev, next := 10, 15
	return []ports.LedgerReportRow{{
		RecordedAt: time.Now(), ProductID: &productID, ProductCode: "SKU-1", ProductName: "Widget",
		Kind: "PURCHASE", Amount: 5, PreviousQuantity: &prev, NewQuantity: &next,
		Outcome: "SUCCESS", Message: "stock from purchase processed",
	}}
}

func TestExportProcessor_ProcessExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockLedgerReportReader(ctrl)
	storage := mocks.NewMockArchiveStorage(ctrl)
	jobs := mocks.NewMockJobRepository(ctrl)

	req := ports.ExportRequest{JobID: "job-1", Format: "xlsx"}

	jobs.EXPECT().UpdateStatus(gomock.Any(), "job-1", ports.JobStatusProcessing, nil).Return(nil)
	reader.EXPECT().MovementReport(gomock.Any(), req).Return(reportRows(), nil)
	storage.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "ledger-exports/"))
			assert.True(t, strings.HasSuffix(key, "movements-job-1.xlsx"))
			assert.Contains(t, contentType, "spreadsheetml")
			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")
			return "s3://bucket/" + key, nil
		})
	storage.EXPECT().GetPresignedURL(gomock.Any(), gomock.Any(), time.Hour).Return("https://signed", nil)
	jobs.EXPECT().
		Complete(gomock.Any(), "job-1", ports.JobStatusCompleted, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, raw json.RawMessage) error {
			var res workers.ExportResult
			require.NoError(t, json.Unmarshal(raw, &res))
			assert.Equal(t, 1, res.Rows)
			assert.Equal(t, "https://signed", res.DownloadURL)
			return nil
		})

	p := workers.NewExportProcessor(reader, storage, jobs, workers.ExportConfig{
		KeyPrefix: "ledger-exports", PresignExpiry: time.Hour,
	}, helpers.TestLogger())

	require.NoError(t, p.ProcessExport(context.Background(), taskFor(t, workers.TypeLedgerExport, req)))
}

func TestExportProcessor_Failures(t *testing.T) {
	tests := []struct {
		name      string
		req       ports.ExportRequest
		maxRows   int
		setup     func(*mocks.MockLedgerReportReader, *mocks.MockJobRepository)
		skipRetry bool
	}{
		{
			name: "unsupported_format",
			req:  ports.ExportRequest{JobID: "j", Format: "csv"},
			setup: func(_ *mocks.MockLedgerReportReader, jobs *mocks.MockJobRepository) {
				jobs.EXPECT().UpdateStatus(gomock.Any(), "j", ports.JobStatusFailed, gomock.Any()).Return(nil)
			},
			skipRetry: true,
		},
		{
			name: "reader_error_is_retried",
			req:  ports.ExportRequest{JobID: "j", Format: "pdf"},
			setup: func(reader *mocks.MockLedgerReportReader, jobs *mocks.MockJobRepository) {
				jobs.EXPECT().UpdateStatus(gomock.Any(), "j", ports.JobStatusProcessing, nil).Return(nil)
				reader.EXPECT().MovementReport(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
				jobs.EXPECT().UpdateStatus(gomock.Any(), "j", ports.JobStatusFailed, gomock.Any()).Return(nil)
			},
		},
		{
			name:    "too_many_rows",
			req:     ports.ExportRequest{JobID: "j", Format: "pdf"},
			maxRows: 1,
			setup: func(reader *mocks.MockLedgerReportReader, jobs *mocks.MockJobRepository) {
				jobs.EXPECT().UpdateStatus(gomock.Any(), "j", ports.JobStatusProcessing, nil).Return(nil)
				reader.EXPECT().MovementReport(gomock.Any(), gomock.Any()).Return(append(reportRows(), reportRows()...), nil)
				jobs.EXPECT().UpdateStatus(gomock.Any(), "j", ports.JobStatusFailed, gomock.Any()).Return(nil)
			},
			skipRetry: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockLedgerReportReader(ctrl)
			storage := mocks.NewMockArchiveStorage(ctrl)
			jobs := mocks.NewMockJobRepository(ctrl)
			tt.setup(reader, jobs)

			p := workers.NewExportProcessor(reader, storage, jobs, workers.ExportConfig{MaxRows: tt.maxRows}, helpers.TestLogger())
			err := p.ProcessExport(context.Background(), taskFor(t, workers.TypeLedgerExport, tt.req))

			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}
