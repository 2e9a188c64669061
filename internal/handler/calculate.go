package handler

import (
	"net/http"

	"edenstone/internal/storefront"
	"edenstone/internal/transport"

	"github.com/go-chi/chi/v5"
)

type stonesResponse struct {
	Product storefront.Product `json:"product"`
	Stones  []storefront.Stone `json:"stones"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, h.catalog.Products())
}

func (h *Handler) ListStones(w http.ResponseWriter, r *http.Request) {
	product, stones, err := h.catalog.StonesFor(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, stonesResponse{Product: product, Stones: stones})
}
