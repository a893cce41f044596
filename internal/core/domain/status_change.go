// internal/core/domain/status_change.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatusChangeRecord is an immutable ledger entry for one status-change attempt
type StatusChangeRecord struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      int64            `json:"product_id"`
	PreviousStatus *ProductStatus   `json:"previous_status"`
	NewStatus      ProductStatus    `json:"new_status"`
	Reason         string           `json:"reason,omitempty"`
	Outcome        OperationOutcome `json:"outcome"`
	Message        string           `json:"message"`
	ChangedAt      time.Time        `json:"changed_at"`
}

// Succeeded reports whether the recorded change was applied
func (r *StatusChangeRecord) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// PrepareForStorage fills the id and timestamp and bounds the text fields
func (r *StatusChangeRecord) PrepareForStorage() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ChangedAt.IsZero() {
		r.ChangedAt = time.Now().UTC()
	}
	r.Reason = TruncateMessage(r.Reason)
	r.Message = TruncateMessage(r.Message)
}

// StatusIntentKind names the three ways a status change can be requested
type StatusIntentKind string

const (
	IntentSetStatus  StatusIntentKind = "SET_STATUS"
	IntentDeactivate StatusIntentKind = "DEACTIVATE"
	IntentActivate   StatusIntentKind = "ACTIVATE"
)

// StatusIntent is a requested status change. NewStatus is only read for SET_STATUS.
type StatusIntent struct {
	Kind      StatusIntentKind
	NewStatus ProductStatus
	Reason    string
}

// SetStatus builds an unconditional audited write intent
func SetStatus(newStatus ProductStatus, reason string) StatusIntent {
	return StatusIntent{Kind: IntentSetStatus, NewStatus: newStatus, Reason: reason}
}

// Deactivate builds a guarded deactivation intent
func Deactivate(reason string) StatusIntent {
	return StatusIntent{Kind: IntentDeactivate, Reason: reason}
}

// Activate builds an activation intent
func Activate(reason string) StatusIntent {
	return StatusIntent{Kind: IntentActivate, Reason: reason}
}

// StatusChangeResult carries the persisted record alongside the outcome error.
// Err is nil only when the change was applied.
type StatusChangeResult struct {
	Record *StatusChangeRecord
	Err    error
}

// Transition is the decision of the lifecycle state machine for one intent.
// Commit is set when Target must be written even if Err is non-nil.
type Transition struct {
	From   ProductStatus
	Target ProductStatus
	Commit bool
	Err    error
}

// DecideDeactivation evaluates the guarded deactivate edges for p.
//
//	ACTIVE       stock == 0 -> INACTIVE
//	ACTIVE       stock  > 0 -> DISCONTINUED (committed) + ErrCannotDeactivateWithStock
//	DISCONTINUED stock == 0 -> INACTIVE
//	DISCONTINUED stock  > 0 -> ErrCannotDeactivateWithStock
//	INACTIVE                -> ErrAlreadyInState
func DecideDeactivation(p *Product) Transition {
	t := Transition{From: p.Status, Target: p.Status}

	switch p.Status {
	case ProductStatusInactive:
		t.Err = &TransitionError{Sentinel: ErrAlreadyInState, From: p.Status, To: ProductStatusInactive,
			Detail: "product is already deactivated"}
	case ProductStatusActive:
		if p.CurrentStock == 0 {
			t.Target, t.Commit = ProductStatusInactive, true
			return t
		}
		t.Target, t.Commit = ProductStatusDiscontinued, true
		t.Err = &TransitionError{Sentinel: ErrCannotDeactivateWithStock, From: p.Status, To: ProductStatusInactive,
			Detail: fmt.Sprintf("product still has %d units in stock; marked as discontinued", p.CurrentStock)}
	case ProductStatusDiscontinued:
		if p.CurrentStock == 0 {
			t.Target, t.Commit = ProductStatusInactive, true
			return t
		}
		t.Err = &TransitionError{Sentinel: ErrCannotDeactivateWithStock, From: p.Status, To: ProductStatusInactive,
			Detail: fmt.Sprintf("product still has %d units in stock", p.CurrentStock)}
	default:
		t.Err = &TransitionError{Sentinel: ErrInvalidTransition, From: p.Status, To: ProductStatusInactive,
			Detail: "deactivation is not defined for this status"}
	}
	return t
}

// DecideActivation evaluates the activate edge: anything but ACTIVE becomes ACTIVE
func DecideActivation(p *Product) Transition {
	if p.Status == ProductStatusActive {
		return Transition{From: p.Status, Target: p.Status, Err: &TransitionError{
			Sentinel: ErrAlreadyInState, From: p.Status, To: ProductStatusActive,
			Detail: "product is already active",
		}}
	}
	return Transition{From: p.Status, Target: ProductStatusActive, Commit: true}
}
