// internal/handlers/status_change.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// StatusChangeHandler handles audited status writes and the status-change ledger
type StatusChangeHandler struct {
	responder
	lifecycle ports.ProductLifecycleService
	queries   ports.LedgerQueryService
	limits    PageLimits
}

// NewStatusChangeHandler creates a new status change handler
func NewStatusChangeHandler(lifecycle ports.ProductLifecycleService, queries ports.LedgerQueryService, limits PageLimits, logger *slog.Logger) *StatusChangeHandler {
	return &StatusChangeHandler{
		responder: responder{logger: logger.With(slog.String("handler", "status_change"))},
		lifecycle: lifecycle,
		queries:   queries,
		limits:    limits,
	}
}

// StatusChangeRequest is the body of POST /product-status-changes
type StatusChangeRequest struct {
	ProductID int64  `json:"product_id"`
	NewStatus string `json:"new_status"`
	Reason    string `json:"reason,omitempty"`
}

// CreateStatusChange handles POST /api/v1/product-status-changes.
// Any attempt that produced a record answers 201 with that record; the
// outcome field tells success from failure.
func (h *StatusChangeHandler) CreateStatusChange(w http.ResponseWriter, r *http.Request) {
	var req StatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID <= 0 {
		h.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	status, err := domain.ParseProductStatus(req.NewStatus)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.lifecycle.SetStatusAudited(r.Context(), req.ProductID, status, req.Reason)
	if res.Record == nil {
		h.respondServiceError(w, r, res.Err, nil, "Failed to record status change")
		return
	}

	h.respondJSON(w, http.StatusCreated, res.Record)
}

// ListStatusChanges handles GET /api/v1/product-status-changes
func (h *StatusChangeHandler) ListStatusChanges(w http.ResponseWriter, r *http.Request) {
	filter, err := h.statusChangeFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.Limit, filter.Offset = parsePage(r, h.limits)

	page, err := h.queries.ListStatusChanges(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to list status changes")
		return
	}

	h.respondJSON(w, http.StatusOK, page)
}

// CountStatusChanges handles GET /api/v1/product-status-changes/count
func (h *StatusChangeHandler) CountStatusChanges(w http.ResponseWriter, r *http.Request) {
	filter, err := h.statusChangeFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.queries.CountStatusChanges(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to count status changes")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// GetStatusChange handles GET /api/v1/product-status-changes/{id}
func (h *StatusChangeHandler) GetStatusChange(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid status change ID format")
		return
	}

	record, err := h.queries.GetStatusChange(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, nil, "Failed to retrieve status change")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

func (h *StatusChangeHandler) statusChangeFilter(r *http.Request) (ports.StatusChangeFilter, error) {
	var (
		filter ports.StatusChangeFilter
		err    error
	)

	if filter.ProductID, err = optionalProductID(r); err != nil {
		return filter, err
	}
	if filter.PreviousStatus, err = optionalStatus(r, "previous_status"); err != nil {
		return filter, err
	}
	if filter.NewStatus, err = optionalStatus(r, "new_status"); err != nil {
		return filter, err
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

	return filter, nil
}
