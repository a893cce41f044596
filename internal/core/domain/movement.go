// internal/core/domain/movement.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MovementKind identifies a quantity-affecting event
type MovementKind string

// Movement kinds. Entries increase stock, exits decrease it.
const (
	MovementPurchase           MovementKind = "PURCHASE"
	MovementReturn             MovementKind = "RETURN"
	MovementAdjustmentPositive MovementKind = "ADJUSTMENT_POSITIVE"
	MovementManualEntry        MovementKind = "MANUAL_ENTRY"
	MovementSale               MovementKind = "SALE"
	MovementBreakage           MovementKind = "BREAKAGE"
	MovementLoss               MovementKind = "LOSS"
	MovementAdjustmentNegative MovementKind = "ADJUSTMENT_NEGATIVE"
	MovementManualExit         MovementKind = "MANUAL_EXIT"
)

// MaxMessageLength bounds outcome messages, notes and reasons
const MaxMessageLength = 500

// MovementClass is the classifier entry for a movement kind
type MovementClass struct {
	Kind           MovementKind
	IsEntry        bool
	SuccessMessage string
}

var movementClasses = map[MovementKind]MovementClass{
	MovementPurchase:           {Kind: MovementPurchase, IsEntry: true, SuccessMessage: "stock from purchase processed"},
	MovementReturn:             {Kind: MovementReturn, IsEntry: true, SuccessMessage: "return processed"},
	MovementAdjustmentPositive: {Kind: MovementAdjustmentPositive, IsEntry: true, SuccessMessage: "positive adjustment processed"},
	MovementManualEntry:        {Kind: MovementManualEntry, IsEntry: true, SuccessMessage: "manual entry processed"},
	MovementSale:               {Kind: MovementSale, IsEntry: false, SuccessMessage: "sale registered"},
	MovementBreakage:           {Kind: MovementBreakage, IsEntry: false, SuccessMessage: "breakage registered"},
	MovementLoss:               {Kind: MovementLoss, IsEntry: false, SuccessMessage: "loss registered"},
	MovementAdjustmentNegative: {Kind: MovementAdjustmentNegative, IsEntry: false, SuccessMessage: "negative adjustment processed"},
	MovementManualExit:         {Kind: MovementManualExit, IsEntry: false, SuccessMessage: "manual exit processed"},
}

// AllMovementKinds returns the nine kinds, entries first
func AllMovementKinds() []MovementKind {
	return []MovementKind{
		MovementPurchase,
		MovementReturn,
		MovementAdjustmentPositive,
		MovementManualEntry,
		MovementSale,
		MovementBreakage,
		MovementLoss,
		MovementAdjustmentNegative,
		MovementManualExit,
	}
}

// Classify looks up the classifier entry for kind
func Classify(kind MovementKind) (MovementClass, bool) {
	c, ok := movementClasses[kind]
	return c, ok
}

// IsValid reports whether k is one of the defined kinds
func (k MovementKind) IsValid() bool {
	_, ok := movementClasses[k]
	return ok
}

// IsEntry reports whether k increases stock
func (k MovementKind) IsEntry() bool {
	return movementClasses[k].IsEntry
}

// SuccessMessage returns the canonical outcome message for a successful movement
func (k MovementKind) SuccessMessage() string {
	if c, ok := movementClasses[k]; ok {
		return c.SuccessMessage
	}
	return "stock movement registered"
}

// Slug returns the route form of the kind, e.g. adjustment-positive
func (k MovementKind) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(k)), "_", "-")
}

// Apply returns the quantity after moving amount in k's direction
func (k MovementKind) Apply(current, amount int) int {
	if k.IsEntry() {
		return current + amount
	}
	return current - amount
}

// ParseMovementKind accepts the enum name or its route slug
func ParseMovementKind(raw string) (MovementKind, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	k := MovementKind(normalized)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown movement kind %q", ErrInvalidMovement, raw)
	}
	return k, nil
}

// OperationOutcome is the result recorded for every ledger entry
type OperationOutcome string

const (
	OutcomeSuccess OperationOutcome = "SUCCESS"
	OutcomeError   OperationOutcome = "ERROR"
)

// IsValid reports whether o is a known outcome
func (o OperationOutcome) IsValid() bool {
	return o == OutcomeSuccess || o == OutcomeError
}

// ParseOperationOutcome parses an outcome name, case-insensitively
func ParseOperationOutcome(raw string) (OperationOutcome, error) {
	o := OperationOutcome(strings.ToUpper(strings.TrimSpace(raw)))
	if !o.IsValid() {
		return "", fmt.Errorf("unknown outcome %q", raw)
	}
	return o, nil
}

// MovementRecord is an immutable ledger entry for one movement attempt.
// ProductID is nil when the product could not be resolved; the quantities
// are nil when the attempt failed before a delta was computed.
type MovementRecord struct {
	ID               uuid.UUID        `json:"id"`
	ProductID        *int64           `json:"product_id"`
	Kind             MovementKind     `json:"kind"`
	Amount           int              `json:"amount"`
	PreviousQuantity *int             `json:"previous_quantity"`
	NewQuantity      *int             `json:"new_quantity"`
	Outcome          OperationOutcome `json:"outcome"`
	Message          string           `json:"message"`
	Notes            string           `json:"notes,omitempty"`
	RecordedAt       time.Time        `json:"recorded_at"`
}

// Succeeded reports whether the recorded movement was applied
func (r *MovementRecord) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// PrepareForStorage fills the id and timestamp and bounds the text fields
func (r *MovementRecord) PrepareForStorage() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	r.Message = TruncateMessage(r.Message)
	r.Notes = TruncateMessage(r.Notes)
}

// NewSuccessfulMovement builds the SUCCESS record for an applied movement
func NewSuccessfulMovement(productID int64, kind MovementKind, amount, previous, next int, notes string) *MovementRecord {
	return &MovementRecord{
		ProductID:        &productID,
		Kind:             kind,
		Amount:           amount,
		PreviousQuantity: &previous,
		NewQuantity:      &next,
		Outcome:          OutcomeSuccess,
		Message:          kind.SuccessMessage(),
		Notes:            notes,
	}
}

// NewRejectedMovement builds the ERROR record for a refused movement.
// productID may be nil when the product itself was not found.
func NewRejectedMovement(productID *int64, kind MovementKind, amount int, message, notes string) *MovementRecord {
	return &MovementRecord{
		ProductID: productID,
		Kind:      kind,
		Amount:    amount,
		Outcome:   OutcomeError,
		Message:   message,
		Notes:     notes,
	}
}

// TruncateMessage bounds s to MaxMessageLength runes
func TruncateMessage(s string) string {
	r := []rune(s)
	if len(r) <= MaxMessageLength {
		return s
	}
	return string(r[:MaxMessageLength])
}
