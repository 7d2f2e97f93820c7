package http

import (
	"context"
	"io"

	"nordpulse/internal/exporter"
	"nordpulse/internal/services"
	"nordpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations used by the handlers
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dashboard, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	ExportProducts(ctx context.Context, out io.Writer, format exporter.Format, criteria domain.FilterCriteria) error
	Reload(ctx context.Context) (services.DatasetStatus, error)
}
