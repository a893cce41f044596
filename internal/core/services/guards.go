// internal/core/services/guards.go
package services

import (
	"context"
	"fmt"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// Rejection messages recorded on ERROR movement records
const (
	msgSupplierInactive     = "supplier is inactive; cannot register a stock entry for this product"
	msgReplenishmentBlocked = "cannot replenish stock for this product"
	msgInsufficientStockFmt = "not enough stock: current = %d, requested = %d"
	msgProductNotFoundFmt   = "product not found: %d"
)

// guardInput is what every movement guard sees: the locked product, the
// request and the supplier lookup bound to the running transaction
type guardInput struct {
	product   *domain.Product
	class     domain.MovementClass
	amount    int
	suppliers ports.SupplierStatusProvider
}

// rejection describes why a guard refused the movement.
// previous is set when the current quantity is part of the failure.
type rejection struct {
	sentinel error
	message  string
	previous *int
}

// movementGuard is one step of the validation pipeline. A non-nil error
// is an infrastructure failure, not a rejection.
type movementGuard struct {
	name  string
	check func(ctx context.Context, in guardInput) (*rejection, error)
}

// movementGuards returns the pipeline in evaluation order:
// supplier, then product status, then stock sufficiency.
func movementGuards() []movementGuard {
	return []movementGuard{
		{name: "supplier", check: supplierGuard},
		{name: "status", check: statusGuard},
		{name: "sufficiency", check: sufficiencyGuard},
	}
}

// supplierGuard applies to every movement direction.
func supplierGuard(ctx context.Context, in guardInput) (*rejection, error) {
	active, err := in.suppliers.IsActive(ctx, in.product.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve supplier %d: %w", in.product.SupplierID, err)
	}
	if active {
		return nil, nil
	}
	return &rejection{sentinel: domain.ErrSupplierInactive, message: msgSupplierInactive}, nil
}

func statusGuard(_ context.Context, in guardInput) (*rejection, error) {
	if !in.product.Status.BlocksReplenishment() {
		return nil, nil
	}
	return &rejection{sentinel: domain.ErrReplenishmentBlocked, message: msgReplenishmentBlocked}, nil
}

func sufficiencyGuard(_ context.Context, in guardInput) (*rejection, error) {
	if in.class.IsEntry || in.product.CurrentStock >= in.amount {
		return nil, nil
	}
	current := in.product.CurrentStock
	return &rejection{
		sentinel: domain.ErrInsufficientStock,
		message:  fmt.Sprintf(msgInsufficientStockFmt, current, in.amount),
		previous: &current,
	}, nil
}
