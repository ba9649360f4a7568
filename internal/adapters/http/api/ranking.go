// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// RankingHandler handles SLA ranking requests.
type RankingHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetRanking handles GET /ranking?segments=&limit=N requests.
// limit is optional; when absent the full ordered sequence is returned.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ranking"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: limit: %w", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: limit above %d: %w", op, h.maxLimit, ErrBadRequest))
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, h.deps.Ranking(r.Context(), segmentSelector(r), limit))
}
