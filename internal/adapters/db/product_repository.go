// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

var productColumns = []string{
	"id", "code", "name", "COALESCE(description, '')", "price",
	"current_stock", "status", "supplier_id", "category_id",
	"created_at", "updated_at",
}

// ProductRepository implements ports.ProductRegistry
type ProductRepository struct {
	q      Querier
	logger *slog.Logger
}

var _ ports.ProductRegistry = (*ProductRepository)(nil)

// NewProductRepository creates a product repository over q
func NewProductRepository(q Querier, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "product")),
	}
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a product and locks its row for the rest of the transaction
func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.get(ctx, id, true)
}

func (r *ProductRepository) get(ctx context.Context, id int64, lock bool) (*domain.Product, error) {
	qb := psql.Select(productColumns...).From("products").Where("id = ?", id)
	if lock {
		qb = qb.Suffix("FOR UPDATE")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

// UpdateStock writes the product's quantity
func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = NOW() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}

	r.logger.DebugContext(ctx, "product stock updated",
		slog.Int64("product_id", id),
		slog.Int("quantity", quantity))
	return nil
}

// UpdateStatus writes the product's lifecycle status
func (r *ProductRepository) UpdateStatus(ctx context.Context, id int64, status domain.ProductStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}

	r.logger.DebugContext(ctx, "product status updated",
		slog.Int64("product_id", id),
		slog.String("status", string(status)))
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p      domain.Product
		status string
	)
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Price,
		&p.CurrentStock, &status, &p.SupplierID, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProductStatus(status)
	return &p, nil
}
