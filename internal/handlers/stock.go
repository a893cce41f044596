// internal/handlers/stock.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// StockHandler handles stock movement requests and the movement ledger
type StockHandler struct {
	responder
	movements ports.StockMovementService
	queries   ports.LedgerQueryService
	limits    PageLimits
}

// NewStockHandler creates a new stock handler
func NewStockHandler(movements ports.StockMovementService, queries ports.LedgerQueryService, limits PageLimits, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		responder: responder{logger: logger.With(slog.String("handler", "stock"))},
		movements: movements,
		queries:   queries,
		limits:    limits,
	}
}

// MovementRequest is the body of the per-kind movement routes
type MovementRequest struct {
	ProductID int64  `json:"product_id"`
	Amount    int    `json:"amount"`
	Notes     string `json:"notes,omitempty"`
}

// GenericMovementRequest names the kind in the body
type GenericMovementRequest struct {
	MovementRequest
	Kind string `json:"kind"`
}

// RecordKindMovement handles POST /api/v1/stock/{kind}
func (h *StockHandler) RecordKindMovement(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseMovementKind(r.PathValue("kind"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.apply(w, r, kind, req)
}

// RecordMovement handles POST /api/v1/stock/movements
func (h *StockHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req GenericMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, err := domain.ParseMovementKind(req.Kind)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.apply(w, r, kind, req.MovementRequest)
}

func (h *StockHandler) apply(w http.ResponseWriter, r *http.Request, kind domain.MovementKind, req MovementRequest) {
	if req.ProductID <= 0 {
		h.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	record, err := h.movements.ApplyMovement(r.Context(), ports.ApplyMovementCommand{
		ProductID: req.ProductID,
		Kind:      kind,
		Amount:    req.Amount,
		Notes:     req.Notes,
	})
	if err != nil {
		var rejected *domain.MovementRejectedError
		if errors.As(err, &rejected) && rejected.Record != nil {
			h.respondServiceError(w, r, err, rejected.Record, "Failed to apply movement")
			return
		}
		h.respondServiceError(w, r, err, nil, "Failed to apply movement")
		return
	}

	h.respondJSON(w, http.StatusCreated, record)
}

// ListMovements handles GET /api/v1/stock/movements
func (h *StockHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	filter, err := h.movementFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.Limit, filter.Offset = parsePage(r, h.limits)

	page, err := h.queries.ListMovements(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to list movements")
		return
	}

	h.respondJSON(w, http.StatusOK, page)
}

// CountMovements handles GET /api/v1/stock/movements/count
func (h *StockHandler) CountMovements(w http.ResponseWriter, r *http.Request) {
	filter, err := h.movementFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.queries.CountMovements(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to count movements")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// GetMovement handles GET /api/v1/stock/movements/{id}
func (h *StockHandler) GetMovement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid movement ID format")
		return
	}

	record, err := h.queries.GetMovement(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to retrieve movement")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

func (h *StockHandler) movementFilter(r *http.Request) (ports.MovementFilter, error) {
	var (
		filter ports.MovementFilter
		err    error
	)

	if filter.ProductID, err = optionalProductID(r); err != nil {
		return filter, err
	}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := domain.ParseMovementKind(raw)
		if err != nil {
			return filter, err
		}
		filter.Kind = &kind
	}
	if filter.Outcome, err = optionalOutcome(r); err != nil {
		return filter, err
	}
	if filter.From, err = optionalTime(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = optionalTime(r, "to"); err != nil {
		return filter, err
	}
	filter.NotesContains = r.URL.Query().Get("notes")

	return filter, nil
}
