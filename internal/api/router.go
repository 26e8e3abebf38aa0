package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the API endpoints and the static dashboard.
func NewRouter(handlers *Handlers, staticDir string) http.Handler {
	r := mux.NewRouter()

	// The API lives on its own subrouter so unmatched or wrong-method
	// requests under /api stay JSON instead of falling through to the
	// static file server.
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/summary", handlers.GetSummary).Methods("GET")
	apiRouter.NotFoundHandler = http.HandlerFunc(apiNotFound)
	apiRouter.MethodNotAllowedHandler = http.HandlerFunc(apiMethodNotAllowed)

	r.HandleFunc("/health", handlers.Health).Methods("GET")

	// Everything else is the dashboard client.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)

	return r
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

// loggingMiddleware logs each HTTP request with its duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// recoveryMiddleware converts handler panics into 500 responses.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Panic recovered")
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
