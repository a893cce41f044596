// internal/core/ports/product_registry.go
package ports

import (
	"context"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// ProductReader reads product snapshots. Lookups return
// domain.ErrProductNotFound when the id does not exist.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ProductRegistry is the persistence port for products
type ProductRegistry interface {
	ProductReader
	// GetForUpdate reads the product and holds a row lock until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, quantity int) error
	UpdateStatus(ctx context.Context, id int64, status domain.ProductStatus) error
}

// SupplierStatusProvider answers whether a supplier may deliver stock
type SupplierStatusProvider interface {
	IsActive(ctx context.Context, supplierID int64) (bool, error)
}

// CatalogRepository writes reference data. Used by the seeder and tests.
type CatalogRepository interface {
	SaveSupplier(ctx context.Context, s *domain.Supplier) error
	SaveCategory(ctx context.Context, c *domain.Category) error
	SaveProduct(ctx context.Context, p *domain.Product) error
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)
}
