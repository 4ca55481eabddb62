package server

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/healthz", h.Health).Methods("GET")

	r.HandleFunc("/api/v1/plans/default", h.DefaultPlan).Methods("GET")
	r.HandleFunc("/api/v1/plans/validate", h.ValidatePlan).Methods("POST")
	r.HandleFunc("/api/v1/formats", h.Formats).Methods("GET")

	r.HandleFunc("/api/v1/projections", h.Project).Methods("POST")

	r.HandleFunc("/api/v1/templates", h.Templates).Methods("GET")
	r.HandleFunc("/api/v1/compare", h.Compare).Methods("POST")

	r.HandleFunc("/api/v1/breakeven", h.BreakEvenAll).Methods("POST")
	r.HandleFunc("/api/v1/breakeven/{target}", h.BreakEven).Methods("POST")

	r.HandleFunc("/api/v1/sensitivity", h.Sensitivity).Methods("POST")
}

// NewRouter builds the router with middleware and routes attached.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, h)
	return r
}
