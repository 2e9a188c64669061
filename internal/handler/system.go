package handler

import (
	"net/http"

	"edenstone/internal/metrics"
	"edenstone/internal/transport"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, metrics.Snapshot())
}
