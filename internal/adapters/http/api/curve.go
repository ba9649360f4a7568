// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// CurveHandler handles learning-curve requests.
type CurveHandler struct {
	deps Dependencies
}

// NewCurveHandler creates a new learning-curve handler.
func NewCurveHandler(deps Dependencies) *CurveHandler {
	return &CurveHandler{deps: deps}
}

// HandleGetCurve handles GET /curve/{worker_id} requests. A worker with
// no task events gets an empty sequence with 200, not a 404: "no data
// for this worker" is a valid dashboard state.
func (h *CurveHandler) HandleGetCurve(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_curve"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	workerID := strings.TrimPrefix(r.URL.Path, "/curve/")
	if workerID == "" || strings.Contains(workerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: worker id: %w", op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.LearningCurve(r.Context(), workerID))
}
