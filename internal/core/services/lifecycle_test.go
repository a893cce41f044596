// internal/core/services/lifecycle_test.go
package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
	"github.com/ammerola/stock-ledger/internal/core/services"
	"github.com/ammerola/stock-ledger/test/helpers"
	"github.com/ammerola/stock-ledger/test/mocks"
)

type lifecycleFixture struct {
	products      *mocks.MockProductRegistry
	statusChanges *mocks.MockStatusChangeLedger
	events        *mocks.MockLedgerEventPublisher
	uow           *mocks.InlineUnitOfWork
	lifecycle     *services.ProductLifecycle
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &lifecycleFixture{
		products:      mocks.NewMockProductRegistry(ctrl),
		statusChanges: mocks.NewMockStatusChangeLedger(ctrl),
		events:        mocks.NewMockLedgerEventPublisher(ctrl),
	}
	f.uow = mocks.NewInlineUnitOfWork(ports.TxRepositories{
		Products:      f.products,
		StatusChanges: f.statusChanges,
	})
	f.lifecycle = services.NewProductLifecycle(f.uow, f.events, helpers.TestLogger())
	return f
}

func (f *lifecycleFixture) expectAppend(dst **domain.StatusChangeRecord) {
	f.statusChanges.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.StatusChangeRecord) error {
			*dst = rec
			return nil
		})
}

func TestProductLifecycle_SetStatusAudited(t *testing.T) {
	t.Run("writes_any_status_unconditionally", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct(func(p *domain.Product) { p.Status = domain.ProductStatusInactive })

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusBlocked).Return(nil)
		f.expectAppend(&appended)
		f.events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

		res := f.lifecycle.SetStatusAudited(context.Background(), product.ID, domain.ProductStatusBlocked, "recall")

		require.NoError(t, res.Err)
		require.NotNil(t, res.Record)
		assert.Same(t, appended, res.Record)
		assert.Equal(t, domain.OutcomeSuccess, res.Record.Outcome)
		assert.Equal(t, "status change applied successfully", res.Record.Message)
		require.NotNil(t, res.Record.PreviousStatus)
		assert.Equal(t, domain.ProductStatusInactive, *res.Record.PreviousStatus)
		assert.Equal(t, domain.ProductStatusBlocked, res.Record.NewStatus)
		assert.Equal(t, "recall", res.Record.Reason)
	})

	t.Run("same_status_is_recorded_as_success", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct()

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusActive).Return(nil)
		f.expectAppend(&appended)
		f.events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

		res := f.lifecycle.SetStatusAudited(context.Background(), product.ID, domain.ProductStatusActive, "")

		require.NoError(t, res.Err)
		assert.True(t, appended.Succeeded())
	})

	t.Run("product_not_found_is_recorded_not_raised", func(t *testing.T) {
		f := newLifecycleFixture(t)

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), int64(42)).Return(nil, domain.ErrProductNotFound)
		f.expectAppend(&appended)

		res := f.lifecycle.SetStatusAudited(context.Background(), 42, domain.ProductStatusBlocked, "")

		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, domain.ErrProductNotFound))
		require.NotNil(t, res.Record)
		assert.Nil(t, res.Record.PreviousStatus)
		assert.Equal(t, domain.OutcomeError, res.Record.Outcome)
		assert.Equal(t, "product not found: 42", res.Record.Message)
		assert.Equal(t, 1, f.uow.Executions)
	})

	t.Run("write_failure_is_recorded_in_a_fresh_transaction", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct()

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusUnavailable).Return(errors.New("deadlock detected"))
		f.expectAppend(&appended)

		res := f.lifecycle.SetStatusAudited(context.Background(), product.ID, domain.ProductStatusUnavailable, "")

		require.Error(t, res.Err)
		require.NotNil(t, res.Record)
		assert.Equal(t, 2, f.uow.Executions)
		assert.Nil(t, appended.PreviousStatus)
		assert.Equal(t, domain.OutcomeError, appended.Outcome)
		assert.Contains(t, appended.Message, "unexpected error: ")
		assert.Contains(t, appended.Message, "deadlock detected")
	})

	t.Run("ledger_unavailable_returns_joined_error", func(t *testing.T) {
		f := newLifecycleFixture(t)

		f.products.EXPECT().GetForUpdate(gomock.Any(), int64(9)).Return(nil, errors.New("connection refused"))
		f.statusChanges.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		res := f.lifecycle.SetStatusAudited(context.Background(), 9, domain.ProductStatusActive, "")

		require.Error(t, res.Err)
		assert.Nil(t, res.Record)
		assert.Contains(t, res.Err.Error(), "failed to append status change record")
	})

	t.Run("unknown_status_is_refused_without_record", func(t *testing.T) {
		f := newLifecycleFixture(t)

		res := f.lifecycle.SetStatusAudited(context.Background(), 1, domain.ProductStatus("ARCHIVED"), "")

		assert.True(t, errors.Is(res.Err, domain.ErrInvalidStatus))
		assert.Nil(t, res.Record)
		assert.Equal(t, 0, f.uow.Executions)
	})
}

func TestProductLifecycle_Deactivate(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.ProductStatus
		stock         int
		wantWrite     *domain.ProductStatus
		wantRecorded  domain.ProductStatus
		wantOutcome   domain.OperationOutcome
		wantErr       error
		wantPublished bool
	}{
		{
			name:          "active_without_stock_becomes_inactive",
			status:        domain.ProductStatusActive,
			stock:         0,
			wantWrite:     statusPtr(domain.ProductStatusInactive),
			wantRecorded:  domain.ProductStatusInactive,
			wantOutcome:   domain.OutcomeSuccess,
			wantPublished: true,
		},
		{
			name:          "active_with_stock_commits_discontinued_and_fails",
			status:        domain.ProductStatusActive,
			stock:         5,
			wantWrite:     statusPtr(domain.ProductStatusDiscontinued),
			wantRecorded:  domain.ProductStatusDiscontinued,
			wantOutcome:   domain.OutcomeError,
			wantErr:       domain.ErrCannotDeactivateWithStock,
			wantPublished: true,
		},
		{
			name:          "discontinued_without_stock_becomes_inactive",
			status:        domain.ProductStatusDiscontinued,
			stock:         0,
			wantWrite:     statusPtr(domain.ProductStatusInactive),
			wantRecorded:  domain.ProductStatusInactive,
			wantOutcome:   domain.OutcomeSuccess,
			wantPublished: true,
		},
		{
			name:         "discontinued_with_stock_is_rejected_unchanged",
			status:       domain.ProductStatusDiscontinued,
			stock:        4,
			wantRecorded: domain.ProductStatusInactive,
			wantOutcome:  domain.OutcomeError,
			wantErr:      domain.ErrCannotDeactivateWithStock,
		},
		{
			name:         "inactive_is_already_deactivated",
			status:       domain.ProductStatusInactive,
			wantRecorded: domain.ProductStatusInactive,
			wantOutcome:  domain.OutcomeError,
			wantErr:      domain.ErrAlreadyInState,
		},
		{
			name:         "blocked_cannot_be_deactivated",
			status:       domain.ProductStatusBlocked,
			wantRecorded: domain.ProductStatusInactive,
			wantOutcome:  domain.OutcomeError,
			wantErr:      domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(t)
			product := helpers.CreateTestProduct(func(p *domain.Product) {
				p.Status = tt.status
				p.CurrentStock = tt.stock
			})

			var appended *domain.StatusChangeRecord
			f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
			if tt.wantWrite != nil {
				f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, *tt.wantWrite).Return(nil)
			}
			f.expectAppend(&appended)
			if tt.wantPublished {
				f.events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec, err := f.lifecycle.Deactivate(context.Background(), product.ID, "end of line")

			require.NotNil(t, rec)
			assert.Same(t, appended, rec)
			assert.Equal(t, tt.wantOutcome, rec.Outcome)
			assert.Equal(t, tt.wantRecorded, rec.NewStatus)
			require.NotNil(t, rec.PreviousStatus)
			assert.Equal(t, tt.status, *rec.PreviousStatus)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, err.Error(), rec.Message)
		})
	}
}

func TestProductLifecycle_Deactivate_ProductNotFound(t *testing.T) {
	f := newLifecycleFixture(t)

	var appended *domain.StatusChangeRecord
	f.products.EXPECT().GetForUpdate(gomock.Any(), int64(77)).Return(nil, fmt.Errorf("get: %w", domain.ErrProductNotFound))
	f.expectAppend(&appended)

	rec, err := f.lifecycle.Deactivate(context.Background(), 77, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	assert.Same(t, appended, rec)
	assert.Nil(t, rec.PreviousStatus)
	assert.Equal(t, domain.ProductStatusInactive, rec.NewStatus)
}

func TestProductLifecycle_Deactivate_WriteFailureRollsBack(t *testing.T) {
	f := newLifecycleFixture(t)
	product := helpers.CreateTestProduct(func(p *domain.Product) { p.CurrentStock = 0 })

	f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
	f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusInactive).Return(errors.New("serialization failure"))

	rec, err := f.lifecycle.Deactivate(context.Background(), product.ID, "")

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, err.Error(), "serialization failure")
}

func TestProductLifecycle_Activate(t *testing.T) {
	t.Run("inactive_becomes_active", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct(func(p *domain.Product) { p.Status = domain.ProductStatusInactive })

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusActive).Return(nil)
		f.expectAppend(&appended)
		f.events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

		rec, err := f.lifecycle.Activate(context.Background(), product.ID, "")

		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusActive, rec.NewStatus)
		assert.True(t, rec.Succeeded())
	})

	t.Run("active_is_already_in_state", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct()

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.expectAppend(&appended)

		rec, err := f.lifecycle.Activate(context.Background(), product.ID, "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyInState))
		assert.Equal(t, domain.OutcomeError, rec.Outcome)
	})
}

func TestProductLifecycle_ChangeStatus_Dispatch(t *testing.T) {
	t.Run("set_status", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct()

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.products.EXPECT().UpdateStatus(gomock.Any(), product.ID, domain.ProductStatusUnavailable).Return(nil)
		f.expectAppend(&appended)
		f.events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

		rec, err := f.lifecycle.ChangeStatus(context.Background(), product.ID, domain.SetStatus(domain.ProductStatusUnavailable, "out of season"))

		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusUnavailable, rec.NewStatus)
	})

	t.Run("deactivate", func(t *testing.T) {
		f := newLifecycleFixture(t)
		product := helpers.CreateTestProduct(func(p *domain.Product) { p.Status = domain.ProductStatusInactive })

		var appended *domain.StatusChangeRecord
		f.products.EXPECT().GetForUpdate(gomock.Any(), product.ID).Return(product, nil)
		f.expectAppend(&appended)

		_, err := f.lifecycle.ChangeStatus(context.Background(), product.ID, domain.Deactivate(""))

		assert.True(t, errors.Is(err, domain.ErrAlreadyInState))
	})

	t.Run("unknown_intent", func(t *testing.T) {
		f := newLifecycleFixture(t)

		_, err := f.lifecycle.ChangeStatus(context.Background(), 1, domain.StatusIntent{Kind: "ARCHIVE"})

		assert.True(t, errors.Is(err, domain.ErrInvalidStatus))
		assert.Equal(t, 0, f.uow.Executions)
	})
}

func statusPtr(s domain.ProductStatus) *domain.ProductStatus {
	return &s
}
