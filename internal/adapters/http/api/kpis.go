// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// KPIHandler handles KPI summary requests.
type KPIHandler struct {
	deps Dependencies
}

// NewKPIHandler creates a new KPI handler.
func NewKPIHandler(deps Dependencies) *KPIHandler {
	return &KPIHandler{deps: deps}
}

// HandleGetKPIs handles GET /kpis?segments= requests.
// An absent segments parameter selects all segments; an explicitly empty
// one selects none and yields the zero-worker summary.
func (h *KPIHandler) HandleGetKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.KPIs(r.Context(), segmentSelector(r)))
}
