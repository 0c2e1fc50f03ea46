package api

import (
	"net/http"
)

// Category Handlers

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := extractPathParam(r.URL.Path, "/api/categories/")

	category, ok, err := h.catalog.GetCategory(r.Context(), slug)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		respondJSONError(w, "category not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, category)
}
