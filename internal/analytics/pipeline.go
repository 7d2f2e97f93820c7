package analytics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nordpulse/pkg/contracts/domain"
)

// TracerName is the instrumentation scope of pipeline spans
const TracerName = "nordpulse/analytics"

// PipelineMetrics receives pipeline run events. Implemented by infrastructure.BusinessMetrics.
type PipelineMetrics interface {
	RecordPipelineRun(ctx context.Context, duration time.Duration, filtered int, err error)
}

// PipelineConfig holds pipeline settings
type PipelineConfig struct {
	// TotalSystemComplaints is the reference total for the complaint share KPI.
	// Zero yields a zero share.
	TotalSystemComplaints int
}

// DefaultPipelineConfig returns the standard settings
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{TotalSystemComplaints: domain.DefaultTotalSystemComplaints}
}

// Pipeline runs extract, filter, metrics and aggregation over a dataset
type Pipeline struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics PipelineMetrics
	config  PipelineConfig
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithPipelineMetrics sets the metrics sink
func WithPipelineMetrics(metrics PipelineMetrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// WithTracer overrides the tracer used for run spans
func WithTracer(tracer trace.Tracer) PipelineOption {
	return func(p *Pipeline) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// NewPipeline creates a pipeline
func NewPipeline(logger *slog.Logger, config PipelineConfig, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger: logger.With(slog.String("component", "analytics_pipeline")),
		tracer: otel.Tracer(TracerName),
		config: config,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run filters the dataset and computes every dashboard output. An empty
// filtered view returns an *EmptyResultError and no aggregates.
func (p *Pipeline) Run(ctx context.Context, ds *domain.Dataset, criteria domain.FilterCriteria) (*domain.Dashboard, error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "analytics.Run",
		trace.WithAttributes(
			attribute.String("dataset.source", sourceName(ds)),
			attribute.Int("dataset.size", ds.Len()),
		))
	defer span.End()

	var records []domain.Record
	if ds != nil {
		records = ds.Records
	}

	universe := ExtractComplaintCategories(records)
	view := Filter(records, universe, criteria)
	span.SetAttributes(attribute.Int("view.size", len(view)))

	if len(view) == 0 {
		err := &EmptyResultError{DatasetSize: len(records)}
		span.SetStatus(codes.Ok, "empty result")
		p.record(ctx, start, 0, err)
		p.logger.InfoContext(ctx, "filters matched no records",
			slog.String("source", sourceName(ds)),
			slog.Int("dataset_size", len(records)))
		return nil, err
	}

	dashboard := &domain.Dashboard{
		Source:              sourceName(ds),
		DatasetLoadedAt:     ds.LoadedAt,
		DatasetSize:         len(records),
		FilteredSize:        len(view),
		Criteria:            criteria,
		KPIs:                CalculateKPIs(view, p.config.TotalSystemComplaints),
		WeeklySeries:        WeeklySeries(view),
		CategoryReturnRates: CategoryReturnRates(view),
		ComplaintFrequency:  ComplaintFrequency(view),
		ProductSummary:      ProductSummary(view),
	}

	p.record(ctx, start, len(view), nil)
	p.logger.DebugContext(ctx, "pipeline run completed",
		slog.String("source", dashboard.Source),
		slog.Int("dataset_size", dashboard.DatasetSize),
		slog.Int("filtered_size", dashboard.FilteredSize),
		slog.Duration("duration", time.Since(start)))

	return dashboard, nil
}

// Options lists the selectable filter values of a dataset together with the
// full date range, which are also the dashboard defaults
func (p *Pipeline) Options(ds *domain.Dataset) domain.FilterOptions {
	var records []domain.Record
	if ds != nil {
		records = ds.Records
	}

	opts := domain.FilterOptions{
		ProductCategories:   ds.ProductCategories(),
		ComplaintCategories: ExtractComplaintCategories(records),
	}
	if min, max, ok := ds.DateBounds(); ok {
		opts.MinDate = &min
		opts.MaxDate = &max
	}
	return opts
}

func (p *Pipeline) record(ctx context.Context, start time.Time, filtered int, err error) {
	if p.metrics != nil {
		p.metrics.RecordPipelineRun(ctx, time.Since(start), filtered, err)
	}
}

func sourceName(ds *domain.Dataset) string {
	if ds == nil {
		return ""
	}
	return ds.Source
}
