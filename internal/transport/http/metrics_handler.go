package http

import (
	"net/http"

	apierrors "nordpulse/internal/errors"
)

// MetricsHandler serves the Prometheus exposition produced by the OTel exporter
type MetricsHandler struct {
	exposition   http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler wraps an exposition handler. A nil handler means metrics are disabled.
func NewMetricsHandler(exposition http.Handler, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{exposition: exposition, errorHandler: errorHandler}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exposition == nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound,
			"NOT_FOUND",
			"Metrics are disabled",
			"set NORDPULSE_METRICS_ENABLED=true to expose /metrics",
		))
		return
	}
	h.exposition.ServeHTTP(w, r)
}
