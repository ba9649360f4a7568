// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// WorkersHandler serves the worker id list, used by the dashboard's
// worker selector.
type WorkersHandler struct {
	deps Dependencies
}

// NewWorkersHandler creates a new workers handler.
func NewWorkersHandler(deps Dependencies) *WorkersHandler {
	return &WorkersHandler{deps: deps}
}

// HandleGetWorkers handles GET /workers?segments= requests.
func (h *WorkersHandler) HandleGetWorkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Workers(r.Context(), segmentSelector(r)))
}
