package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router. Path matching belongs to the dispatcher, so
// chi only mounts the catch-all route and, optionally, the metrics endpoint.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)

	if h.metricsPath != "" && h.metrics != nil {
		router.Method(http.MethodGet, h.metricsPath, h.metrics)
	}

	router.Handle("/*", h.dispatcher)
	router.NotFound(h.dispatcher.ServeHTTP)
	router.MethodNotAllowed(h.dispatcher.ServeHTTP)

	return router
}
