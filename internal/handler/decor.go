package handler

import (
	"fmt"
	"net/http"

	"edenstone/internal/decor"
	"edenstone/internal/transport"

	"github.com/go-chi/chi/v5"
)

type toggleRequest struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

type sortRequest struct {
	Sort string `json:"sort"`
}

type limitRequest struct {
	Limit int `json:"limit"`
}

// GetCatalog returns the visitor's catalog view, running the initial fetch
// on first use. brand_q narrows the brand facet list.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w, r)
	err := ctrl.EnsureLoaded(r.Context())
	h.respondView(w, r, ctrl, err)
}

func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var f decor.FiltersState
	if err := transport.DecodeJSON(r, &f); err != nil {
		transport.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.SetFilters(r.Context(), f))
}

func (h *Handler) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	dim, err := decor.ParseDimension(req.Dimension)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", err, req.Dimension))
		return
	}
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.Toggle(r.Context(), dim, req.Value))
}

func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.ClearFilters(r.Context()))
}

func (h *Handler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode, err := decor.ParseSortMode(req.Sort)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", err, req.Sort))
		return
	}
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.SetSort(r.Context(), mode))
}

func (h *Handler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !decor.ValidPageSize(req.Limit) {
		writeError(w, r, fmt.Errorf("%w: %d", decor.ErrInvalidPageSize, req.Limit))
		return
	}
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.SetPageSize(r.Context(), req.Limit))
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w, r)
	h.respondView(w, r, ctrl, ctrl.LoadMore(r.Context()))
}

// respondView writes the controller view. A failed fetch still answers
// with the view, which carries the error message, under an error status.
func (h *Handler) respondView(w http.ResponseWriter, r *http.Request, ctrl *decor.Controller, err error) {
	view := ctrl.View()
	if q := r.URL.Query().Get("brand_q"); q != "" {
		view.Facets.Brands = decor.FilterBrands(view.Facets.Brands, q)
		if view.Facets.Brands == nil {
			view.Facets.Brands = []string{}
		}
	}

	code := http.StatusOK
	if err != nil {
		code = statusFor(err)
		logError(r, err, code)
	}
	transport.WriteJSON(w, code, view)
}

func (h *Handler) GetDecor(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.detail.FetchBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, item)
}
