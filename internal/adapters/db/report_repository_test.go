package db_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-ledger/internal/adapters/db"
	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/test/helpers"
)

var reportColumns = []string{
	"recorded_at", "product_id", "code", "name", "kind", "amount",
	"previous_quantity", "new_quantity", "outcome", "message", "notes",
}

func TestReportRepository_MovementReport(t *testing.T) {
	mock, sqlDB := helpers.SetupMockDB(t)
	repo := db.NewReportRepository(sqlDB, helpers.TestLogger())
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM movement_records m LEFT JOIN products p")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(at, int64(4), "SKU-4", "Widget", "PURCHASE", 5, 10, 15, "SUCCESS", "stock entry registered successfully", "").
			AddRow(at.Add(time.Minute), int64(4), "SKU-4", "Widget", "SALE", 50, 15, nil, "ERROR", "not enough stock: current = 15, requested = 50", "walk-in"))

	rows, err := repo.MovementReport(context.Background(), ports.ExportRequest{ProductID: ptr(int64(4))})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SKU-4", rows[0].ProductCode)
	assert.Equal(t, 15, *rows[0].NewQuantity)
	assert.Equal(t, 15, *rows[1].PreviousQuantity)
	assert.Nil(t, rows[1].NewQuantity)
	assert.Equal(t, "walk-in", rows[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_MovementReport_UnknownProduct(t *testing.T) {
	mock, sqlDB := helpers.SetupMockDB(t)
	repo := db.NewReportRepository(sqlDB, helpers.TestLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM movement_records m")).
		WillReturnRows(sqlmock.NewRows(reportColumns).
			AddRow(time.Now(), nil, "", "", "SALE", 1, nil, nil, "ERROR", "product not found: 99", ""))

	rows, err := repo.MovementReport(context.Background(), ports.ExportRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ProductID)
	assert.Nil(t, rows[0].PreviousQuantity)
}

func TestReportRepository_MovementReport_QueryError(t *testing.T) {
	mock, sqlDB := helpers.SetupMockDB(t)
	repo := db.NewReportRepository(sqlDB, helpers.TestLogger())

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := repo.MovementReport(context.Background(), ports.ExportRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query movement report")
}
