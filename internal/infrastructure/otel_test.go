package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"nordpulse/internal/analytics"
	"nordpulse/internal/config"
	"nordpulse/internal/dataset"
)

// Compile-time checks that BusinessMetrics satisfies the component sinks
var (
	_ dataset.CacheMetrics      = (*BusinessMetrics)(nil)
	_ analytics.PipelineMetrics = (*BusinessMetrics)(nil)
)

func testOTelConfig() *OTelConfig {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "none"
	return cfg
}

func TestOTelInitialization(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	providers, err := InitializeOTel(testOTelConfig(), logger)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_Disabled(t *testing.T) {
	cfg := testOTelConfig()
	cfg.EnableMetrics = false
	cfg.EnableTracing = false

	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Meter, "falls back to the global meter")
	assert.NotNil(t, providers.Tracer, "falls back to the global tracer")

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordCacheHit(context.Background(), "sales.csv")
}

func TestOTelConfiguration(t *testing.T) {
	t.Run("unsupported trace exporter", func(t *testing.T) {
		cfg := DefaultOTelConfig()
		cfg.TraceExporter = "jaeger"
		_, err := InitializeOTel(cfg, nil)
		assert.Error(t, err)
	})

	t.Run("unsupported metric exporter", func(t *testing.T) {
		cfg := testOTelConfig()
		cfg.MetricExporter = "statsd"
		_, err := InitializeOTel(cfg, nil)
		assert.Error(t, err)
	})

	t.Run("from application config", func(t *testing.T) {
		cfg := OTelConfigFromConfig(config.MetricsConfig{
			Enabled:       true,
			Tracing:       false,
			TraceExporter: "none",
			SampleRatio:   0.5,
			Environment:   "staging",
		})
		assert.True(t, cfg.EnableMetrics)
		assert.False(t, cfg.EnableTracing)
		assert.Equal(t, "none", cfg.TraceExporter)
		assert.Equal(t, 0.5, cfg.SampleRatio)
		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, ServiceName, cfg.ServiceName)
	})
}

func TestBusinessMetrics_PrometheusExposition(t *testing.T) {
	providers, err := InitializeOTel(testOTelConfig(), nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordHTTPRequest(ctx, http.MethodGet, "/api/dashboard", http.StatusOK, 15*time.Millisecond)
	metrics.RecordCacheHit(ctx, "sales.csv")
	metrics.RecordCacheMiss(ctx, "sales.csv")
	metrics.RecordDatasetLoad(ctx, "sales.csv", 20*time.Millisecond, nil)
	metrics.RecordDatasetLoad(ctx, "sales.csv", time.Millisecond, errors.New("missing"))
	metrics.RecordPipelineRun(ctx, time.Millisecond, 12, nil)
	metrics.RecordPipelineRun(ctx, time.Millisecond, 0, &analytics.EmptyResultError{DatasetSize: 3})
	metrics.RecordExport(ctx, "xlsx", nil)
	metrics.RecordSystemError(ctx, "test")

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(body)

	for _, name := range []string{
		"http_requests_total",
		"dataset_cache_hits_total",
		"dataset_cache_misses_total",
		"dataset_loads_total",
		"dataset_load_errors_total",
		"pipeline_runs_total",
		"pipeline_empty_results_total",
		"exports_total",
		"go_goroutines",
	} {
		assert.True(t, strings.Contains(out, name), "missing %s in exposition", name)
	}
	assert.Contains(t, out, `status="empty"`)
}

func TestBusinessMetrics_NilSafe(t *testing.T) {
	var metrics *BusinessMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordHTTPRequest(ctx, http.MethodGet, "/", 200, time.Millisecond)
		metrics.RecordCacheHit(ctx, "x")
		metrics.RecordCacheMiss(ctx, "x")
		metrics.RecordDatasetLoad(ctx, "x", time.Millisecond, nil)
		metrics.RecordPipelineRun(ctx, time.Millisecond, 1, nil)
		metrics.RecordExport(ctx, "csv", nil)
		metrics.RecordSystemError(ctx, "x")
	})
}

func TestTraceCorrelation(t *testing.T) {
	cfg := testOTelConfig()
	cfg.TraceExporter = "stdout"
	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-operation")
	defer span.End()

	traceID := TraceIDFromContext(ctx)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	// Span trace IDs are used when no request ID is set
	assert.Equal(t, traceID, GetTraceID(ctx))
	assert.Equal(t, "req-1", GetTraceID(WithTraceID(ctx, "req-1")))

	AddSpanEvent(ctx, "test.event", map[string]interface{}{
		"string": "v", "int": 1, "int64": int64(2), "float": 1.5, "bool": true, "other": time.Second,
	})
	RecordError(ctx, errors.New("boom"))
}
