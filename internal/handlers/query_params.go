// internal/handlers/query_params.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// PageLimits bounds list endpoints
type PageLimits struct {
	Default int
	Max     int
}

func (p PageLimits) normalize() PageLimits {
	if p.Default <= 0 {
		p.Default = 50
	}
	if p.Max < p.Default {
		p.Max = p.Default
	}
	return p
}

// parsePage reads limit and offset. Out-of-range values fall back to the
// configured bounds rather than failing the request.
func parsePage(r *http.Request, limits PageLimits) (limit, offset int) {
	limits = limits.normalize()
	limit = limits.Default

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			limit = min(l, limits.Max)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if o, err := strconv.Atoi(raw); err == nil && o > 0 {
			offset = o
		}
	}
	return limit, offset
}

func parseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}

func optionalProductID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("product_id")
	if raw == "" {
		return nil, nil
	}
	id, err := parseProductID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// optionalTime accepts RFC3339 timestamps or plain dates
func optionalTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s %q: expected RFC3339 or YYYY-MM-DD", name, raw)
}

func optionalOutcome(r *http.Request) (*domain.OperationOutcome, error) {
	raw := r.URL.Query().Get("outcome")
	if raw == "" {
		return nil, nil
	}
	o, err := domain.ParseOperationOutcome(raw)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func optionalStatus(r *http.Request, name string) (*domain.ProductStatus, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	s, err := domain.ParseProductStatus(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
