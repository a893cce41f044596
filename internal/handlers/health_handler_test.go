package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/handlers"
	"github.com/ammerola/stock-ledger/internal/handlers/middleware"
	"github.com/ammerola/stock-ledger/internal/pkg/auth"
	"github.com/ammerola/stock-ledger/test/helpers"
	"github.com/ammerola/stock-ledger/test/mocks"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockDatabase, *mocks.MockLedgerQueryService)
		expectedStatus int
		expectedState  string
	}{
		{
			name: "all_dependencies_healthy",
			setupMocks: func(db *mocks.MockDatabase, ledger *mocks.MockLedgerQueryService) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				db.EXPECT().Health(gomock.Any()).Return(map[string]interface{}{"total_conns": int32(4)})
				ledger.EXPECT().CountMovements(gomock.Any(), gomock.Any()).Return(int64(2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
		{
			name: "database_down_degrades",
			setupMocks: func(db *mocks.MockDatabase, ledger *mocks.MockLedgerQueryService) {
				db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
				ledger.EXPECT().CountMovements(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := mocks.NewMockDatabase(ctrl)
			ledger := mocks.NewMockLedgerQueryService(ctrl)
			tt.setupMocks(db, ledger)
			tr := helpers.SetupTestRedis(t)

			h := handlers.NewHealthHandler(db, tr.Client, nil, ledger, helpers.LoadTestConfig(), helpers.TestLogger())

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest("GET", "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var status handlers.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
			assert.Equal(t, tt.expectedState, status.Status)
			assert.Contains(t, status.Services, "redis")
			assert.Contains(t, status.Services, "ledger")
		})
	}
}

func TestHealthHandler_Probes(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDatabase(ctrl)
	tr := helpers.SetupTestRedis(t)
	h := handlers.NewHealthHandler(db, tr.Client, nil, nil, helpers.LoadTestConfig(), helpers.TestLogger())

	t.Run("liveness_skips_dependencies", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Liveness(w, httptest.NewRequest("GET", "/health/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ready", func(t *testing.T) {
		db.EXPECT().Ping(gomock.Any()).Return(nil)
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not_ready_when_redis_down", func(t *testing.T) {
		db.EXPECT().Ping(gomock.Any()).Return(nil)
		tr.Server.Close()

		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"not ready"`)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "product_not_found", err: fmt.Errorf("%w: 9", domain.ErrProductNotFound), expected: http.StatusNotFound},
		{name: "record_not_found", err: domain.ErrRecordNotFound, expected: http.StatusNotFound},
		{name: "invalid_movement", err: domain.ErrInvalidMovement, expected: http.StatusBadRequest},
		{name: "invalid_status", err: domain.ErrInvalidStatus, expected: http.StatusBadRequest},
		{name: "insufficient_stock", err: &domain.MovementRejectedError{Sentinel: domain.ErrInsufficientStock}, expected: http.StatusBadRequest},
		{name: "replenishment_blocked", err: &domain.MovementRejectedError{Sentinel: domain.ErrReplenishmentBlocked}, expected: http.StatusBadRequest},
		{name: "supplier_inactive", err: &domain.MovementRejectedError{Sentinel: domain.ErrSupplierInactive}, expected: http.StatusConflict},
		{name: "already_in_state", err: &domain.TransitionError{Sentinel: domain.ErrAlreadyInState}, expected: http.StatusConflict},
		{name: "cannot_deactivate_with_stock", err: &domain.TransitionError{Sentinel: domain.ErrCannotDeactivateWithStock}, expected: http.StatusConflict},
		{name: "invalid_transition", err: &domain.TransitionError{Sentinel: domain.ErrInvalidTransition}, expected: http.StatusConflict},
		{name: "anything_else", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handlers.StatusFor(tt.err))
		})
	}
}

func TestNewRouter_AuthGuardsAPIOnly(t *testing.T) {
	const secret = "router-test-secret"

	ctrl := gomock.NewController(t)
	queries := mocks.NewMockLedgerQueryService(ctrl)
	db := mocks.NewMockDatabase(ctrl)
	tr := helpers.SetupTestRedis(t)

	routes := handlers.Routes{
		Products: handlers.NewProductHandler(mocks.NewMockProductLifecycleService(ctrl), queries, helpers.TestLogger()),
		Health:   handlers.NewHealthHandler(db, tr.Client, nil, nil, helpers.LoadTestConfig(), helpers.TestLogger()),
	}
	router := handlers.NewRouter(routes, middleware.Authenticate(secret, "", helpers.TestLogger()))

	t.Run("health_without_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api_without_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/products/1", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("api_with_token", func(t *testing.T) {
		queries.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(helpers.CreateTestProduct(), nil)
		token, err := auth.Issue(secret, "", "clerk-7", "", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/products/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
