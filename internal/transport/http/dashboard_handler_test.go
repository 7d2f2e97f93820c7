package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nordpulse/internal/analytics"
	"nordpulse/internal/dataset"
	apierrors "nordpulse/internal/errors"
	"nordpulse/internal/exporter"
	"nordpulse/internal/services"
	"nordpulse/internal/shared/testutil"
	"nordpulse/pkg/contracts/domain"
)

var _ DashboardServiceInterface = (*services.DashboardService)(nil)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dashboard, error) {
	args := m.Called(ctx, criteria)
	if d := args.Get(0); d != nil {
		return d.(*domain.Dashboard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FilterOptions), args.Error(1)
}

func (m *MockDashboardService) ExportProducts(ctx context.Context, out io.Writer, format exporter.Format, criteria domain.FilterCriteria) error {
	args := m.Called(ctx, out, format, criteria)
	if payload, ok := args.Get(1).(string); ok && payload != "" {
		_, _ = io.WriteString(out, payload)
	}
	return args.Error(0)
}

func (m *MockDashboardService) Reload(ctx context.Context) (services.DatasetStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.DatasetStatus), args.Error(1)
}

func newTestRouter(t *testing.T, svc DashboardServiceInterface) (http.Handler, *DashboardHandler) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	handler := NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
	handler.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Mount("/api/dashboard", handler.Routes())
	r.Get("/api/filters", handler.GetFilters)
	r.Post("/api/dataset/reload", handler.ReloadDataset)
	return r, handler
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	svc := &MockDashboardService{}
	router, _ := newTestRouter(t, svc)

	start := testutil.Day(2024, 1, 1)
	end := testutil.Day(2024, 1, 31)
	want := domain.FilterCriteria{
		ProductCategories:   domain.Only("Laptops", "Smart Home"),
		ComplaintCategories: domain.All(),
		DateRange:           domain.DateRange{Start: &start, End: &end},
	}
	svc.On("Dashboard", mock.Anything, want).Return(&domain.Dashboard{
		Source:       "sales.csv",
		DatasetSize:  5,
		FilteredSize: 3,
		KPIs:         domain.KPIs{TransactionCount: 3, ReturnRate: 33.3},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/dashboard?product_category=Laptops&product_category=Smart+Home&start=2024-01-01&end=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["filtered_size"])
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ExplicitEmptySelections(t *testing.T) {
	svc := &MockDashboardService{}
	router, _ := newTestRouter(t, svc)

	want := domain.FilterCriteria{
		ProductCategories:   domain.Only(),
		ComplaintCategories: domain.Only(),
	}
	svc.On("Dashboard", mock.Anything, want).Return(nil, &analytics.EmptyResultError{DatasetSize: 5})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/dashboard?product_category_none=true&complaint_category_none=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, apierrors.TypeNoDataForFilter, body["type"])
	assert.Equal(t, float64(5), body["dataset_size"])
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "bad start", query: "start=2024/01/01", field: "start"},
		{name: "impossible end", query: "start=2024-01-01&end=2024-02-31", field: "end"},
		{name: "blank category", query: "product_category=", field: "product_category[0]"},
		{name: "bad none flag", query: "complaint_category_none=maybe", field: "complaint_category_none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockDashboardService{}
			router, _ := newTestRouter(t, svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, apierrors.TypeValidation, body["type"])

			fields, ok := body["errors"].([]interface{})
			require.True(t, ok, "errors extension present")
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].(map[string]interface{})["field"])
			svc.AssertNotCalled(t, "Dashboard", mock.Anything, mock.Anything)
		})
	}
}

func TestDashboardHandler_SourceUnavailable(t *testing.T) {
	svc := &MockDashboardService{}
	router, _ := newTestRouter(t, svc)
	svc.On("Dashboard", mock.Anything, domain.FilterCriteria{}).
		Return(nil, &dataset.DataSourceError{Source: "sales.csv", Err: os.ErrNotExist})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apierrors.TypeDataSourceUnavailable, decodeBody(t, rec)["type"])
}

func TestDashboardHandler_GetFilters(t *testing.T) {
	svc := &MockDashboardService{}
	router, _ := newTestRouter(t, svc)

	first, last := testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 10)
	svc.On("FilterOptions", mock.Anything).Return(domain.FilterOptions{
		ProductCategories:   []string{"Laptops", "Phones"},
		ComplaintCategories: []string{"Delivery"},
		MinDate:             &first,
		MaxDate:             &last,
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/filters", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []interface{}{"Laptops", "Phones"}, body["product_categories"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["min_date"])
}

func TestDashboardHandler_ExportProducts(t *testing.T) {
	t.Run("csv download", func(t *testing.T) {
		svc := &MockDashboardService{}
		router, _ := newTestRouter(t, svc)
		svc.On("ExportProducts", mock.Anything, mock.Anything, exporter.FormatCSV,
			domain.FilterCriteria{ProductCategories: domain.Only("Phones")}).
			Return(nil, "Product,Sales\n")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/products/export?product_category=Phones", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="product_summary_20240115.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Product,Sales\n", rec.Body.String())
	})

	t.Run("xlsx format", func(t *testing.T) {
		svc := &MockDashboardService{}
		router, _ := newTestRouter(t, svc)
		svc.On("ExportProducts", mock.Anything, mock.Anything, exporter.FormatXLSX, domain.FilterCriteria{}).
			Return(nil, "PK")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/products/export?format=xlsx", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	})

	t.Run("unsupported format", func(t *testing.T) {
		svc := &MockDashboardService{}
		router, _ := newTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/products/export?format=pdf", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ExportProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed export yields a problem", func(t *testing.T) {
		svc := &MockDashboardService{}
		router, _ := newTestRouter(t, svc)
		svc.On("ExportProducts", mock.Anything, mock.Anything, exporter.FormatCSV, domain.FilterCriteria{}).
			Return(apierrors.NewExportError("disk full", errors.New("write")), "partial")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/products/export", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "partial")
		assert.Equal(t, apierrors.TypeExportFailed, decodeBody(t, rec)["type"])
	})
}

func TestDashboardHandler_ReloadDataset(t *testing.T) {
	svc := &MockDashboardService{}
	router, _ := newTestRouter(t, svc)
	svc.On("Reload", mock.Anything).Return(services.DatasetStatus{
		Source:      "sales.csv",
		Invalidated: true,
		Records:     42,
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["invalidated"])
	assert.Equal(t, float64(42), body["records"])
}
