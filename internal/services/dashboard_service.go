package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"nordpulse/internal/analytics"
	"nordpulse/internal/dataset"
	apierrors "nordpulse/internal/errors"
	"nordpulse/internal/exporter"
	"nordpulse/internal/infrastructure"
	"nordpulse/pkg/contracts/domain"
)

// ExportMetrics receives one event per export attempt
type ExportMetrics interface {
	RecordExport(ctx context.Context, format string, err error)
}

// DatasetStatus describes the cached dataset after a reload request
type DatasetStatus struct {
	Source      string             `json:"source"`
	Invalidated bool               `json:"invalidated"`
	Records     int                `json:"records"`
	SkippedRows int                `json:"skipped_rows"`
	LoadedAt    time.Time          `json:"loaded_at"`
	Cache       dataset.CacheStats `json:"cache"`
}

// DashboardService serves dashboards computed from a cached dataset
type DashboardService struct {
	source   dataset.Source
	cache    *dataset.Cache
	pipeline *analytics.Pipeline
	exporter *exporter.ProductExporter
	metrics  ExportMetrics
	logger   *slog.Logger
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithExportMetrics sets the export metrics sink
func WithExportMetrics(metrics ExportMetrics) DashboardOption {
	return func(s *DashboardService) {
		s.metrics = metrics
	}
}

// NewDashboardService creates a dashboard service over one dataset source
func NewDashboardService(source dataset.Source, cache *dataset.Cache, pipeline *analytics.Pipeline, exp *exporter.ProductExporter, logger *slog.Logger, opts ...DashboardOption) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DashboardService{
		source:   source,
		cache:    cache,
		pipeline: pipeline,
		exporter: exp,
		logger:   infrastructure.WithComponent(logger, "dashboard_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	name := ""
	if source != nil {
		name = source.Name()
	}
	s.logger.Info("DashboardService initialized",
		slog.String("source", name),
		slog.Duration("cache_ttl", cache.TTL()))
	return s
}

// SourceName returns the name of the dataset source
func (s *DashboardService) SourceName() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Dashboard runs the pipeline for the given criteria
func (s *DashboardService) Dashboard(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dashboard, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	return s.pipeline.Run(ctx, ds, criteria)
}

// FilterOptions returns the selectable filter values of the current dataset
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return s.pipeline.Options(ds), nil
}

// ExportProducts writes the product summary table for the criteria to out
func (s *DashboardService) ExportProducts(ctx context.Context, out io.Writer, format exporter.Format, criteria domain.FilterCriteria) (err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordExport(ctx, string(format), err)
		}
	}()

	dashboard, err := s.Dashboard(ctx, criteria)
	if err != nil {
		return err
	}

	if err := s.exporter.Export(out, format, dashboard.ProductSummary); err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "product export failed",
			slog.String("format", string(format)))
		return apierrors.NewExportError("product summary export failed", err).
			WithContext("format", string(format))
	}

	s.logger.InfoContext(ctx, "products exported",
		slog.String("format", string(format)),
		slog.Int("rows", len(dashboard.ProductSummary)))
	return nil
}

// Reload drops the cached dataset and loads it again
func (s *DashboardService) Reload(ctx context.Context) (DatasetStatus, error) {
	if s.source == nil {
		return DatasetStatus{}, errNoSource()
	}

	s.cache.Invalidate(s.source.Name())
	s.logger.InfoContext(ctx, "dataset cache invalidated",
		slog.String("source", s.source.Name()))

	ds, err := s.dataset(ctx)
	if err != nil {
		return DatasetStatus{}, err
	}

	return DatasetStatus{
		Source:      ds.Source,
		Invalidated: true,
		Records:     ds.Len(),
		SkippedRows: ds.SkippedRows,
		LoadedAt:    ds.LoadedAt,
		Cache:       s.cache.Stats(),
	}, nil
}

// CacheStats returns the dataset cache counters
func (s *DashboardService) CacheStats() dataset.CacheStats {
	return s.cache.Stats()
}

// Check loads the dataset through the cache and reports whether it is usable
func (s *DashboardService) Check(ctx context.Context) error {
	_, err := s.dataset(ctx)
	return err
}

func (s *DashboardService) dataset(ctx context.Context) (*domain.Dataset, error) {
	if s.source == nil {
		return nil, errNoSource()
	}
	ds, err := s.cache.Get(ctx, s.source)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "dataset unavailable",
			slog.String("source", s.source.Name()))
		return nil, err
	}
	return ds, nil
}
