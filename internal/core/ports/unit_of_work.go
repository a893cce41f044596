// internal/core/ports/unit_of_work.go
package ports

import "context"

// TxRepositories are repositories bound to one open transaction. Suppliers
// reads through the same connection, so a movement never needs a second one.
type TxRepositories struct {
	Products      ProductRegistry
	Suppliers     SupplierStatusProvider
	Movements     MovementLedger
	StatusChanges StatusChangeLedger
}

// UnitOfWork runs fn inside a single transaction. A nil return from fn
// commits; an error or panic rolls back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
