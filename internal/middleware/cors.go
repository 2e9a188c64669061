package middleware

import (
	"net/http"

	"edenstone/internal/logger"

	"github.com/go-chi/cors"
)

// CORS allows the storefront origins to call the API from the browser. With
// no origins configured every cross-origin request is refused.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", logger.RequestIDHeader, DeviceIDHeader, ClientTypeHeader},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(allowedOrigins) == 0 {
		// an empty list means "allow all" to the cors package
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	return cors.Handler(opts)
}
