// Package handler exposes the storefront over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"edenstone/internal/browse"
	"edenstone/internal/decor"
	"edenstone/internal/lead"
	"edenstone/internal/logger"
	"edenstone/internal/storefront"
	"edenstone/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const SessionCookie = "edenstone_session"

// DetailFetcher resolves a single decor by slug.
type DetailFetcher interface {
	FetchBySlug(ctx context.Context, slug string) (*decor.DecorItem, error)
}

type Handler struct {
	sessions *browse.Store
	detail   DetailFetcher
	leads    lead.Service
	catalog  *storefront.Catalog

	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	SessionTTL    time.Duration
}

func New(sessions *browse.Store, detail DetailFetcher, leads lead.Service, catalog *storefront.Catalog) *Handler {
	return &Handler{
		sessions: sessions,
		detail:   detail,
		leads:    leads,
		catalog:  catalog,
	}
}

// Routes registers every storefront endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/metrics", h.Metrics)

	r.Route("/decor", func(r chi.Router) {
		r.Get("/", h.GetCatalog)
		r.Put("/filters", h.SetFilters)
		r.Post("/filters/toggle", h.ToggleFilter)
		r.Delete("/filters", h.ClearFilters)
		r.Put("/sort", h.SetSort)
		r.Put("/limit", h.SetPageSize)
		r.Post("/more", h.LoadMore)
		r.Get("/{slug}", h.GetDecor)
	})

	r.Get("/calculate", h.ListProducts)
	r.Get("/calculate/{slug}/stone", h.ListStones)

	r.Post("/callback", h.SubmitLead)
}

// session resolves the visitor's catalog controller, issuing a new cookie
// when the visitor has none or it expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *decor.Controller {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sid, ctrl, created := h.sessions.Resolve(id)
	if created {
		cookie := &http.Cookie{
			Name:     SessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		}
		if h.SessionTTL > 0 {
			cookie.MaxAge = int(h.SessionTTL.Seconds())
		}
		http.SetCookie(w, cookie)
	}
	return ctrl
}

// statusFor maps a domain error to the HTTP status returned to the client.
func statusFor(err error) int {
	switch {
	case lead.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, decor.ErrNotFound), errors.Is(err, storefront.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, decor.ErrDetailTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, decor.ErrUnknownDimension),
		errors.Is(err, decor.ErrUnknownSort),
		errors.Is(err, decor.ErrInvalidPageSize),
		errors.Is(err, transport.ErrEmptyBody):
		return http.StatusBadRequest
	default:
		// upstream failures, including *decor.StatusError and lead.ErrSubmitFailed
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	logError(r, err, code)
	transport.WriteJSONError(w, err.Error(), code)
}

func logError(r *http.Request, err error, code int) {
	log := logger.FromCtx(r.Context())
	if code >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err), zap.Int("status", code))
	} else {
		log.Info("request rejected", zap.Error(err), zap.Int("status", code))
	}
}
