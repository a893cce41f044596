// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// CatalogRepository writes suppliers, categories and products
type CatalogRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a catalog repository over q
func NewCatalogRepository(q Querier, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

// SaveSupplier inserts the supplier or updates it by name
func (r *CatalogRepository) SaveSupplier(ctx context.Context, s *domain.Supplier) error {
	if s.Status == "" {
		s.Status = domain.SupplierStatusActive
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_info, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET contact_info = EXCLUDED.contact_info, status = EXCLUDED.status
		RETURNING id`,
		s.Name, s.ContactInfo, string(s.Status),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}
	return nil
}

// SaveCategory inserts the category or updates it by name
func (r *CatalogRepository) SaveCategory(ctx context.Context, c *domain.Category) error {
	if c.Status == "" {
		c.Status = domain.CategoryStatusActive
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO categories (name, description, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, status = EXCLUDED.status
		RETURNING id`,
		c.Name, c.Description, string(c.Status),
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// SaveProduct inserts the product or updates it by code. Stock and status
// are only set on insert; afterwards they change through the ledger.
func (r *CatalogRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	var status string
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (code, name, description, price, current_stock, status,
			supplier_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			supplier_id = EXCLUDED.supplier_id,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, current_stock, status, created_at`,
		p.Code, p.Name, p.Description, p.Price, p.CurrentStock, string(p.Status),
		p.SupplierID, p.CategoryID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CurrentStock, &status, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	p.Status = domain.ProductStatus(status)

	r.logger.DebugContext(ctx, "product saved",
		slog.Int64("product_id", p.ID),
		slog.String("code", p.Code))
	return nil
}

// FindProductByCode retrieves a product by its unique code
func (r *CatalogRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where("code = ?", code).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: code %s", domain.ErrProductNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by code: %w", err)
	}
	return p, nil
}
