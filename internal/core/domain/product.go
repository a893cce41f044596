// internal/core/domain/product.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus represents a product's lifecycle status
type ProductStatus string

// Lifecycle status constants
const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
	ProductStatusBlocked      ProductStatus = "BLOCKED"
	ProductStatusUnavailable  ProductStatus = "UNAVAILABLE"
)

// AllProductStatuses returns every lifecycle status in declaration order
func AllProductStatuses() []ProductStatus {
	return []ProductStatus{
		ProductStatusActive,
		ProductStatusInactive,
		ProductStatusDiscontinued,
		ProductStatusBlocked,
		ProductStatusUnavailable,
	}
}

// IsValid reports whether s is a known lifecycle status
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued,
		ProductStatusBlocked, ProductStatusUnavailable:
		return true
	}
	return false
}

// BlocksReplenishment reports whether stock movements are refused in this status
func (s ProductStatus) BlocksReplenishment() bool {
	switch s {
	case ProductStatusDiscontinued, ProductStatusBlocked, ProductStatusUnavailable:
		return true
	}
	return false
}

// ParseProductStatus parses a status name, case-insensitively
func ParseProductStatus(raw string) (ProductStatus, error) {
	s := ProductStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown product status %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Product is the stock-carrying entity owned by the product registry
type Product struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"current_stock"`
	Status       ProductStatus   `json:"status"`
	SupplierID   int64           `json:"supplier_id"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("code is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.CurrentStock < 0 {
		return fmt.Errorf("current_stock cannot be negative")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if p.SupplierID <= 0 {
		return fmt.Errorf("supplier_id is required")
	}
	if p.Status == "" {
		p.Status = ProductStatusActive
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	return nil
}

// SupplierStatus represents whether a supplier may deliver stock
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "ACTIVE"
	SupplierStatusInactive SupplierStatus = "INACTIVE"
)

// Supplier is reference data consulted by the movement engine
type Supplier struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	ContactInfo string         `json:"contact_info,omitempty"`
	Status      SupplierStatus `json:"status"`
}

// IsActive reports whether the supplier accepts stock movements
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// CategoryStatus mirrors SupplierStatus for categories
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "ACTIVE"
	CategoryStatusInactive CategoryStatus = "INACTIVE"
)

// Category groups products
type Category struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      CategoryStatus `json:"status"`
}
