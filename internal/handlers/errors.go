// internal/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/stock-ledger/internal/core/domain"
)

// errorResponse is the body of every failed request. Record carries the
// ledger entry persisted for the attempt, when there is one.
type errorResponse struct {
	Error  string `json:"error"`
	Record any    `json:"record,omitempty"`
}

// StatusFor maps a service error onto an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMovement),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrReplenishmentBlocked):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSupplierInactive),
		errors.Is(err, domain.ErrAlreadyInState),
		errors.Is(err, domain.ErrCannotDeactivateWithStock),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// responder holds the JSON helpers shared by every handler
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError writes err with its mapped status. Internal failures
// are logged and their detail is not exposed.
func (h responder) respondServiceError(w http.ResponseWriter, r *http.Request, err error, record any, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), fallback,
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		h.respondJSON(w, status, errorResponse{Error: fallback, Record: record})
		return
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error(), Record: record})
}
