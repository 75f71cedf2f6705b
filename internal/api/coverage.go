package api

import (
	"fmt"
	"net/http"
)

// Coverage handles GET /coverage: the delivery coverage map reference
// data.
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Store.Coverage.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Coverage: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, areas)
}

// DataCount handles GET /all-data-count: per-collection counts for the
// landing-page counters.
func (h *Handler) DataCount(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Store.Counts(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("DataCount: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, counts)
}
