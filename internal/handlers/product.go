// internal/handlers/product.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// ProductHandler serves product reads and the guarded lifecycle transitions
type ProductHandler struct {
	responder
	lifecycle ports.ProductLifecycleService
	queries   ports.LedgerQueryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(lifecycle ports.ProductLifecycleService, queries ports.LedgerQueryService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		responder: responder{logger: logger.With(slog.String("handler", "product"))},
		lifecycle: lifecycle,
		queries:   queries,
	}
}

// TransitionRequest is the optional body of activate and deactivate
type TransitionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.queries.GetProduct(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to retrieve product")
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// Deactivate handles PATCH /api/v1/products/{id}/deactivate
func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycle.Deactivate)
}

// Activate handles PATCH /api/v1/products/{id}/activate
func (h *ProductHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycle.Activate)
}

type lifecycleCall func(ctx context.Context, productID int64, reason string) (*domain.StatusChangeRecord, error)

func (h *ProductHandler) transition(w http.ResponseWriter, r *http.Request, apply lifecycleCall) {
	id, err := parseProductID(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := apply(r.Context(), id, req.Reason)
	if err != nil {
		if record != nil {
			h.respondServiceError(w, r, err, record, "Failed to change product status")
			return
		}
		h.respondServiceError(w, r, err, nil, "Failed to change product status")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}
