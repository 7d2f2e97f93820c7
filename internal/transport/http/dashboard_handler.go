package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "nordpulse/internal/errors"
	"nordpulse/internal/exporter"
	"nordpulse/internal/infrastructure"
	"nordpulse/internal/middleware"
)

// exportFormats are the accepted values of the format parameter
var exportFormats = []string{string(exporter.FormatCSV), string(exporter.FormatXLSX)}

// DashboardHandler handles dashboard, filter, export and reload requests
type DashboardHandler struct {
	service        DashboardServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validator      *middleware.ValidationMiddleware
	queryValidator *middleware.QueryParamValidator
	now            func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:        service,
		logger:         infrastructure.WithComponent(logger, "dashboard_handler"),
		errorHandler:   errorHandler,
		validator:      middleware.NewValidationMiddleware(logger, errorHandler),
		queryValidator: middleware.NewQueryParamValidator(logger, errorHandler),
		now:            time.Now,
	}
}

// Routes returns the /api/dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.With(middleware.TraceMiddleware("dashboard.export")).Get("/products/export", h.ExportProducts)
	return r
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query := ParseDashboardQuery(r.URL.Query())
	if !h.validator.Validate(w, r, query) {
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), query.Criteria())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, dashboard)
}

// GetFilters handles GET /api/filters
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, options)
}

// ExportProducts handles GET /api/dashboard/products/export
func (h *DashboardHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	name, ok := h.queryValidator.ValidateEnum(w, r, ParamFormat, exportFormats, string(exporter.FormatCSV))
	if !ok {
		return
	}
	format, err := exporter.ParseFormat(name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFormat)
		return
	}

	query := ParseDashboardQuery(r.URL.Query())
	if !h.validator.Validate(w, r, query) {
		return
	}

	// Buffer so a failed export still yields a problem response
	var buf bytes.Buffer
	if err := h.service.ExportProducts(r.Context(), &buf, format, query.Criteria()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := exporter.ProductFileName(h.now(), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		infrastructure.WithError(h.logger, err).WarnContext(r.Context(), "export download interrupted",
			slog.String("filename", filename))
	}
}

// ReloadDataset handles POST /api/dataset/reload
func (h *DashboardHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reloaded",
		slog.String("source", status.Source),
		slog.Int("records", status.Records))
	render.JSON(w, r, status)
}
