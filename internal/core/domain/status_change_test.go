package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

func TestDecideDeactivation(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ProductStatus
		stock      int
		wantTarget domain.ProductStatus
		wantCommit bool
		wantErr    error
	}{
		{
			name:       "active_without_stock_becomes_inactive",
			status:     domain.ProductStatusActive,
			stock:      0,
			wantTarget: domain.ProductStatusInactive,
			wantCommit: true,
		},
		{
			name:       "active_with_stock_is_discontinued_and_rejected",
			status:     domain.ProductStatusActive,
			stock:      5,
			wantTarget: domain.ProductStatusDiscontinued,
			wantCommit: true,
			wantErr:    domain.ErrCannotDeactivateWithStock,
		},
		{
			name:       "discontinued_without_stock_becomes_inactive",
			status:     domain.ProductStatusDiscontinued,
			stock:      0,
			wantTarget: domain.ProductStatusInactive,
			wantCommit: true,
		},
		{
			name:       "discontinued_with_stock_is_rejected_without_change",
			status:     domain.ProductStatusDiscontinued,
			stock:      2,
			wantTarget: domain.ProductStatusDiscontinued,
			wantErr:    domain.ErrCannotDeactivateWithStock,
		},
		{
			name:       "inactive_is_already_deactivated",
			status:     domain.ProductStatusInactive,
			wantTarget: domain.ProductStatusInactive,
			wantErr:    domain.ErrAlreadyInState,
		},
		{
			name:       "blocked_has_no_deactivate_edge",
			status:     domain.ProductStatusBlocked,
			wantTarget: domain.ProductStatusBlocked,
			wantErr:    domain.ErrInvalidTransition,
		},
		{
			name:       "unavailable_has_no_deactivate_edge",
			status:     domain.ProductStatusUnavailable,
			stock:      1,
			wantTarget: domain.ProductStatusUnavailable,
			wantErr:    domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Product{ID: 1, Status: tt.status, CurrentStock: tt.stock}

			got := domain.DecideDeactivation(p)

			assert.Equal(t, tt.status, got.From)
			assert.Equal(t, tt.wantTarget, got.Target)
			assert.Equal(t, tt.wantCommit, got.Commit)
			if tt.wantErr == nil {
				assert.NoError(t, got.Err)
				return
			}
			require.Error(t, got.Err)
			assert.True(t, errors.Is(got.Err, tt.wantErr))
		})
	}
}

func TestDecideActivation(t *testing.T) {
	for _, s := range domain.AllProductStatuses() {
		t.Run(string(s), func(t *testing.T) {
			got := domain.DecideActivation(&domain.Product{Status: s})
			if s == domain.ProductStatusActive {
				assert.False(t, got.Commit)
				assert.True(t, errors.Is(got.Err, domain.ErrAlreadyInState))
				return
			}
			assert.True(t, got.Commit)
			assert.NoError(t, got.Err)
			assert.Equal(t, domain.ProductStatusActive, got.Target)
		})
	}
}

func TestStatusIntents(t *testing.T) {
	set := domain.SetStatus(domain.ProductStatusBlocked, "recall")
	assert.Equal(t, domain.IntentSetStatus, set.Kind)
	assert.Equal(t, domain.ProductStatusBlocked, set.NewStatus)
	assert.Equal(t, "recall", set.Reason)

	assert.Equal(t, domain.IntentDeactivate, domain.Deactivate("").Kind)
	assert.Equal(t, domain.IntentActivate, domain.Activate("").Kind)
}

func TestTransitionError_Message(t *testing.T) {
	err := &domain.TransitionError{
		Sentinel: domain.ErrInvalidTransition,
		From:     domain.ProductStatusBlocked,
		To:       domain.ProductStatusInactive,
	}
	assert.Equal(t, "invalid status transition: BLOCKED -> INACTIVE", err.Error())
}
