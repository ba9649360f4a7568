// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// ParetoHandler handles task-concentration requests.
type ParetoHandler struct {
	deps Dependencies
}

// NewParetoHandler creates a new Pareto handler.
func NewParetoHandler(deps Dependencies) *ParetoHandler {
	return &ParetoHandler{deps: deps}
}

// HandleGetPareto handles GET /pareto?segments= requests. The response
// carries the per-worker cumulative table plus the headline numbers and
// the human-readable summary sentence.
func (h *ParetoHandler) HandleGetPareto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Pareto(r.Context(), segmentSelector(r)))
}
