package http

import (
	"net/http"

	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

// Handler hosts the dispatcher behind the transport middleware chain.
type Handler struct {
	dispatcher http.Handler

	metricsPath string
	metrics     http.Handler

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewHandler returns a Handler serving every request through dispatcher.
// When metricsPath is non-empty, GET requests to it are answered by metrics
// instead.
func NewHandler(dispatcher http.Handler, metricsPath string, metrics http.Handler, logger *logger.Logger) *Handler {
	logger.Debug().Str("metrics_path", metricsPath).Msg("http handler created")
	return &Handler{
		dispatcher:  dispatcher,
		metricsPath: metricsPath,
		metrics:     metrics,
		traceIDs:    utils.NewUUIDGenerator(),
		logger:      logger,
	}
}
