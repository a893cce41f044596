package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/handlers"
	"github.com/ammerola/stock-ledger/test/helpers"
	"github.com/ammerola/stock-ledger/test/mocks"
)

var testLimits = handlers.PageLimits{Default: 50, Max: 500}

func newStockRouter(t *testing.T) (http.Handler, *mocks.MockStockMovementService, *mocks.MockLedgerQueryService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	movements := mocks.NewMockStockMovementService(ctrl)
	queries := mocks.NewMockLedgerQueryService(ctrl)
	h := handlers.NewStockHandler(movements, queries, testLimits, helpers.TestLogger())
	return handlers.NewRouter(handlers.Routes{Stock: h}, nil), movements, queries
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeError(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestStockHandler_RecordKindMovement(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		body           interface{}
		setupMocks     func(*mocks.MockStockMovementService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "purchase_applied",
			slug: "purchase",
			body: handlers.MovementRequest{ProductID: 1, Amount: 5, Notes: "delivery 42"},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), ports.ApplyMovementCommand{
						ProductID: 1, Kind: domain.MovementPurchase, Amount: 5, Notes: "delivery 42",
					}).
					Return(helpers.CreateTestMovementRecord(), nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var rec domain.MovementRecord
				require.NoError(t, json.Unmarshal(body, &rec))
				assert.Equal(t, domain.OutcomeSuccess, rec.Outcome)
				require.NotNil(t, rec.NewQuantity)
				assert.Equal(t, 15, *rec.NewQuantity)
			},
		},
		{
			name: "slug_maps_to_adjustment_negative",
			slug: "adjustment-negative",
			body: handlers.MovementRequest{ProductID: 1, Amount: 2},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Cond(func(cmd ports.ApplyMovementCommand) bool {
						return cmd.Kind == domain.MovementAdjustmentNegative
					})).
					Return(helpers.CreateTestMovementRecord(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "insufficient_stock_returns_record",
			slug: "sale",
			body: handlers.MovementRequest{ProductID: 1, Amount: 5},
			setupMocks: func(m *mocks.MockStockMovementService) {
				previous := 3
				rec := domain.NewRejectedMovement(ptr(int64(1)), domain.MovementSale, 5, "insufficient stock. available: 3, requested: 5", "")
				rec.PreviousQuantity = &previous
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, &domain.MovementRejectedError{Sentinel: domain.ErrInsufficientStock, Record: rec})
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Contains(t, resp["error"], "insufficient stock")
				record, ok := resp["record"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "ERROR", record["outcome"])
			},
		},
		{
			name: "inactive_supplier_conflict",
			slug: "purchase",
			body: handlers.MovementRequest{ProductID: 1, Amount: 5},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, &domain.MovementRejectedError{
						Sentinel: domain.ErrSupplierInactive,
						Record:   domain.NewRejectedMovement(ptr(int64(1)), domain.MovementPurchase, 5, "supplier is inactive", ""),
					})
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "unknown_product_not_found",
			slug: "return",
			body: handlers.MovementRequest{ProductID: 99, Amount: 1},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, &domain.MovementRejectedError{
						Sentinel: domain.ErrProductNotFound,
						Record:   domain.NewRejectedMovement(nil, domain.MovementReturn, 1, "product not found with id: 99", ""),
					})
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "invalid_amount_without_record",
			slug: "purchase",
			body: handlers.MovementRequest{ProductID: 1, Amount: 0},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: amount must be at least 1", domain.ErrInvalidMovement))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				_, hasRecord := resp["record"]
				assert.False(t, hasRecord)
			},
		},
		{
			name:           "unknown_kind",
			slug:           "teleport",
			body:           handlers.MovementRequest{ProductID: 1, Amount: 1},
			setupMocks:     func(m *mocks.MockStockMovementService) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing_product_id",
			slug:           "purchase",
			body:           handlers.MovementRequest{Amount: 1},
			setupMocks:     func(m *mocks.MockStockMovementService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "infrastructure_failure_hides_detail",
			slug: "loss",
			body: handlers.MovementRequest{ProductID: 1, Amount: 1},
			setupMocks: func(m *mocks.MockStockMovementService) {
				m.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("failed to apply movement: connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Failed to apply movement", decodeError(t, body)["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, movements, _ := newStockRouter(t)
			tt.setupMocks(movements)

			req := httptest.NewRequest("POST", "/api/v1/stock/"+tt.slug, jsonBody(t, tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStockHandler_RecordMovement(t *testing.T) {
	t.Run("kind_from_body", func(t *testing.T) {
		router, movements, _ := newStockRouter(t)
		movements.EXPECT().
			ApplyMovement(gomock.Any(), ports.ApplyMovementCommand{ProductID: 1, Kind: domain.MovementManualEntry, Amount: 4}).
			Return(helpers.CreateTestMovementRecord(), nil)

		body := handlers.GenericMovementRequest{
			MovementRequest: handlers.MovementRequest{ProductID: 1, Amount: 4},
			Kind:            "MANUAL_ENTRY",
		}
		req := httptest.NewRequest("POST", "/api/v1/stock/movements", jsonBody(t, body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid_kind", func(t *testing.T) {
		router, _, _ := newStockRouter(t)
		req := httptest.NewRequest("POST", "/api/v1/stock/movements", bytes.NewBufferString(`{"product_id":1,"kind":"GIFT","amount":1}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed_body", func(t *testing.T) {
		router, _, _ := newStockRouter(t)
		req := httptest.NewRequest("POST", "/api/v1/stock/movements", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w.Body.Bytes())["error"])
	})
}

func TestStockHandler_ListMovements(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockLedgerQueryService)
		expectedStatus int
	}{
		{
			name:  "applies_filters_and_caps_limit",
			query: "?product_id=7&kind=sale&outcome=error&notes=promo&limit=10000&offset=20&from=2026-01-01",
			setupMocks: func(m *mocks.MockLedgerQueryService) {
				m.EXPECT().
					ListMovements(gomock.Any(), gomock.Cond(func(f ports.MovementFilter) bool {
						return f.ProductID != nil && *f.ProductID == 7 &&
							f.Kind != nil && *f.Kind == domain.MovementSale &&
							f.Outcome != nil && *f.Outcome == domain.OutcomeError &&
							f.NotesContains == "promo" &&
							f.From != nil && f.To == nil &&
							f.Limit == 500 && f.Offset == 20
					})).
					Return(&ports.Page[domain.MovementRecord]{Limit: 500, Offset: 20}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "defaults_page_size",
			query: "",
			setupMocks: func(m *mocks.MockLedgerQueryService) {
				m.EXPECT().
					ListMovements(gomock.Any(), ports.MovementFilter{Limit: 50}).
					Return(&ports.Page[domain.MovementRecord]{
						Items: []*domain.MovementRecord{helpers.CreateTestMovementRecord()}, Limit: 50, TotalCount: 1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects_bad_product_id",
			query:          "?product_id=abc",
			setupMocks:     func(m *mocks.MockLedgerQueryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects_bad_timestamp",
			query:          "?to=yesterday",
			setupMocks:     func(m *mocks.MockLedgerQueryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, queries := newStockRouter(t)
			tt.setupMocks(queries)

			req := httptest.NewRequest("GET", "/api/v1/stock/movements"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestStockHandler_CountMovements(t *testing.T) {
	router, _, queries := newStockRouter(t)
	queries.EXPECT().
		CountMovements(gomock.Any(), gomock.Cond(func(f ports.MovementFilter) bool {
			return f.Outcome != nil && *f.Outcome == domain.OutcomeSuccess
		})).
		Return(int64(12), nil)

	req := httptest.NewRequest("GET", "/api/v1/stock/movements/count?outcome=SUCCESS", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp["count"])
}

func TestStockHandler_GetMovement(t *testing.T) {
	rec := helpers.CreateTestMovementRecord()

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockLedgerQueryService)
		expectedStatus int
	}{
		{
			name: "found",
			id:   rec.ID.String(),
			setupMocks: func(m *mocks.MockLedgerQueryService) {
				m.EXPECT().GetMovement(gomock.Any(), rec.ID).Return(rec, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not_found",
			id:   uuid.New().String(),
			setupMocks: func(m *mocks.MockLedgerQueryService) {
				m.EXPECT().GetMovement(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: movement", domain.ErrRecordNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid_uuid",
			id:             "not-a-uuid",
			setupMocks:     func(m *mocks.MockLedgerQueryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			queries := mocks.NewMockLedgerQueryService(ctrl)
			tt.setupMocks(queries)
			h := handlers.NewStockHandler(mocks.NewMockStockMovementService(ctrl), queries, testLimits, helpers.TestLogger())

			req := httptest.NewRequest("GET", "/api/v1/stock/movements/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			h.GetMovement(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
