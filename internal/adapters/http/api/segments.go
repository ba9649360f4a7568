// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// SegmentsHandler serves the distinct performance segments, used by the
// dashboard to populate its filter control.
type SegmentsHandler struct {
	deps Dependencies
}

// NewSegmentsHandler creates a new segments handler.
func NewSegmentsHandler(deps Dependencies) *SegmentsHandler {
	return &SegmentsHandler{deps: deps}
}

// HandleGetSegments handles GET /segments requests.
func (h *SegmentsHandler) HandleGetSegments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Segments(r.Context()))
}
