// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors distinguishable by callers with errors.Is
var (
	ErrProductNotFound           = errors.New("product not found")
	ErrRecordNotFound            = errors.New("ledger record not found")
	ErrSupplierInactive          = errors.New("supplier is inactive")
	ErrReplenishmentBlocked      = errors.New("product status blocks stock movements")
	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrAlreadyInState            = errors.New("product already in requested state")
	ErrCannotDeactivateWithStock = errors.New("cannot deactivate product with stock")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrInvalidMovement           = errors.New("invalid movement")
	ErrInvalidStatus             = errors.New("invalid status")
)

// MovementRejectedError is returned when the engine refused a movement.
// Record is the ERROR entry that was persisted for the attempt.
type MovementRejectedError struct {
	Sentinel error
	Record   *MovementRecord
}

func (e *MovementRejectedError) Error() string {
	if e.Record != nil && e.Record.Message != "" {
		return e.Record.Message
	}
	return e.Sentinel.Error()
}

func (e *MovementRejectedError) Unwrap() error {
	return e.Sentinel
}

// TransitionError is returned when a guarded status change is refused
type TransitionError struct {
	Sentinel error
	From     ProductStatus
	To       ProductStatus
	Detail   string
}

func (e *TransitionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Sentinel.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: %s -> %s", e.Sentinel.Error(), e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return e.Sentinel
}
