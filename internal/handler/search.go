package handler

import (
	"net/http"

	"github.com/swiftfood/checkout-gateway/internal/backend"
)

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if results == nil {
		results = []backend.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}
