// internal/adapters/db/unit_of_work.go
package db

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// ProductInvalidator drops cached copies of a product
type ProductInvalidator interface {
	Invalidate(ctx context.Context, id int64)
}

// UnitOfWork runs service callbacks in one PostgreSQL transaction, handing
// them repositories bound to that transaction
type UnitOfWork struct {
	db          *Database
	suppliers   func(ports.SupplierStatusProvider) ports.SupplierStatusProvider
	invalidator ProductInvalidator
	logger      *slog.Logger
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkOption configures a UnitOfWork
type UnitOfWorkOption func(*UnitOfWork)

// WithSupplierStatus decorates the transaction's supplier lookup, e.g. with
// a cache. Misses still query through the transaction.
func WithSupplierStatus(wrap func(ports.SupplierStatusProvider) ports.SupplierStatusProvider) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.suppliers = wrap
	}
}

// WithProductInvalidation invalidates every product whose stock or status
// was written, once the transaction has committed
func WithProductInvalidation(inv ProductInvalidator) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.invalidator = inv
	}
}

// NewUnitOfWork creates a unit of work over db
func NewUnitOfWork(db *Database, logger *slog.Logger, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{db: db, logger: logger}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Execute runs fn in a transaction. fn's error rolls everything back,
// including any ledger rows it appended.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	var written *writeTracker
	err := u.db.Transaction(ctx, func(tx pgx.Tx) error {
		repos := TxRepositories(tx, u.logger)
		if u.suppliers != nil {
			repos.Suppliers = u.suppliers(repos.Suppliers)
		}
		if u.invalidator != nil {
			written = &writeTracker{ProductRegistry: repos.Products}
			repos.Products = written
		}
		return fn(ctx, repos)
	})
	if err != nil {
		return err
	}

	if written != nil {
		for _, id := range written.touched() {
			u.invalidator.Invalidate(ctx, id)
		}
	}
	return nil
}

// TxRepositories binds the transactional repositories to q
func TxRepositories(q Querier, logger *slog.Logger) ports.TxRepositories {
	return ports.TxRepositories{
		Products:      NewProductRepository(q, logger),
		Suppliers:     NewSupplierRepository(q, logger),
		Movements:     NewMovementLedgerRepository(q, logger),
		StatusChanges: NewStatusChangeLedgerRepository(q, logger),
	}
}

// writeTracker remembers which products a transaction wrote
type writeTracker struct {
	ports.ProductRegistry

	mu  sync.Mutex
	ids []int64
}

func (w *writeTracker) UpdateStock(ctx context.Context, id int64, quantity int) error {
	if err := w.ProductRegistry.UpdateStock(ctx, id, quantity); err != nil {
		return err
	}
	w.mark(id)
	return nil
}

func (w *writeTracker) UpdateStatus(ctx context.Context, id int64, status domain.ProductStatus) error {
	if err := w.ProductRegistry.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	w.mark(id)
	return nil
}

func (w *writeTracker) mark(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, seen := range w.ids {
		if seen == id {
			return
		}
	}
	w.ids = append(w.ids, id)
}

func (w *writeTracker) touched() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ids
}
