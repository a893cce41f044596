// internal/handlers/router.go
package handlers

import (
	"net/http"
)

// APIPrefix is the version prefix of every ledger route
const APIPrefix = "/api/v1"

// Routes groups the handlers mounted by NewRouter. Nil handlers are skipped.
type Routes struct {
	Stock         *StockHandler
	Products      *ProductHandler
	StatusChanges *StatusChangeHandler
	Exports       *ExportHandler
	Imports       *ImportHandler
	Health        *HealthHandler
}

// NewRouter registers every route using Go 1.22 method patterns. api wraps
// the versioned routes only, so health probes stay reachable without
// credentials.
func NewRouter(routes Routes, api func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	v1 := http.NewServeMux()

	if h := routes.Stock; h != nil {
		v1.HandleFunc("POST "+APIPrefix+"/stock/movements", h.RecordMovement)
		v1.HandleFunc("POST "+APIPrefix+"/stock/{kind}", h.RecordKindMovement)
		v1.HandleFunc("GET "+APIPrefix+"/stock/movements", h.ListMovements)
		v1.HandleFunc("GET "+APIPrefix+"/stock/movements/count", h.CountMovements)
		v1.HandleFunc("GET "+APIPrefix+"/stock/movements/{id}", h.GetMovement)
	}

	if h := routes.Products; h != nil {
		v1.HandleFunc("GET "+APIPrefix+"/products/{id}", h.GetProduct)
		v1.HandleFunc("PATCH "+APIPrefix+"/products/{id}/deactivate", h.Deactivate)
		v1.HandleFunc("PATCH "+APIPrefix+"/products/{id}/activate", h.Activate)
	}

	if h := routes.StatusChanges; h != nil {
		v1.HandleFunc("POST "+APIPrefix+"/product-status-changes", h.CreateStatusChange)
		v1.HandleFunc("GET "+APIPrefix+"/product-status-changes", h.ListStatusChanges)
		v1.HandleFunc("GET "+APIPrefix+"/product-status-changes/count", h.CountStatusChanges)
		v1.HandleFunc("GET "+APIPrefix+"/product-status-changes/{id}", h.GetStatusChange)
	}

	if h := routes.Exports; h != nil {
		v1.HandleFunc("GET "+APIPrefix+"/ledger/export", h.ExportLedger)
		v1.HandleFunc("POST "+APIPrefix+"/ledger/exports", h.ScheduleExport)
		v1.HandleFunc("GET "+APIPrefix+"/jobs/{id}", h.JobStatus)
	}

	if h := routes.Imports; h != nil {
		v1.HandleFunc("POST "+APIPrefix+"/stock/imports", h.ImportMovements)
	}

	if h := routes.Health; h != nil {
		mux.HandleFunc("GET /health", h.Health)
		mux.HandleFunc("GET /health/live", h.Liveness)
		mux.HandleFunc("GET /health/ready", h.Readiness)
	}

	var apiHandler http.Handler = v1
	if api != nil {
		apiHandler = api(v1)
	}
	mux.Handle(APIPrefix+"/", apiHandler)

	return mux
}
