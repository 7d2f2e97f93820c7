package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordpulse/internal/analytics"
	"nordpulse/internal/dataset"
	"nordpulse/internal/shared/testutil"
)

func TestNewErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		includeStack bool
	}{
		{name: "with stack traces", includeStack: true},
		{name: "without stack traces", includeStack: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, tt.includeStack)

			assert.NotNil(t, handler)
			assert.Equal(t, tt.includeStack, handler.includeStack)
			assert.NotNil(t, handler.logger)
		})
	}

	assert.NotNil(t, NewErrorHandler(nil, false).logger)
}

func TestErrorHandler_HandleError(t *testing.T) {
	type query struct {
		Format string `validate:"oneof=csv xlsx"`
	}
	validationErr := validator.New().Struct(query{Format: "pdf"})
	require.Error(t, validationErr)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantExt    map[string]interface{}
	}{
		{
			name:       "empty result",
			err:        fmt.Errorf("dashboard: %w", &analytics.EmptyResultError{DatasetSize: 12}),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNoDataForFilter,
			wantExt:    map[string]interface{}{"dataset_size": float64(12)},
		},
		{
			name:       "bare empty sentinel",
			err:        analytics.ErrEmptyResult,
			wantStatus: http.StatusNotFound,
			wantType:   TypeNoDataForFilter,
		},
		{
			name:       "data source unavailable",
			err:        &dataset.DataSourceError{Source: "sales.csv", Err: os.ErrNotExist},
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDataSourceUnavailable,
			wantExt:    map[string]interface{}{"source": "sales.csv"},
		},
		{
			name:       "missing column",
			err:        &dataset.DataSourceError{Source: "sales.csv", Err: fmt.Errorf("%w: Price", dataset.ErrMissingColumn)},
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDataCorrupted,
		},
		{
			name:       "validator errors",
			err:        validationErr,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("load: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error",
			err:        ErrUnsupportedFormat,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantExt:    map[string]interface{}{"error_code": "UNSUPPORTED_FORMAT"},
		},
		{
			name:       "app export error",
			err:        fmt.Errorf("export products: %w", NewExportError("write failed", os.ErrClosed).WithContext("format", "xlsx")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExportFailed,
			wantExt:    map[string]interface{}{"error_type": "EXPORT", "format": "xlsx"},
		},
		{
			name:       "problem details pass through",
			err:        NewProblemDetails(http.StatusConflict, "/errors/conflict", "Conflict", "busy", ""),
			wantStatus: http.StatusConflict,
			wantType:   "/errors/conflict",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/dashboard", body["instance"])
			assert.Equal(t, "req-1", body["trace_id"])
			assert.NotContains(t, body, "stack")
			for k, v := range tt.wantExt {
				assert.Equal(t, v, body[k], "extension %s", k)
			}
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandler_LogLevels(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	handler.HandleError(httptest.NewRecorder(), req, analytics.ErrEmptyResult)
	handler.HandleError(httptest.NewRecorder(), req, fmt.Errorf("boom"))

	testutil.AssertLogContains(t, logs, slog.LevelWarn, "request failed")
	testutil.AssertLogContains(t, logs, slog.LevelError, "request failed")
	testutil.AssertLogAttr(t, logs, "component", "error_handler")
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	type query struct {
		Start string `validate:"required"`
	}
	err := validator.New().Struct(query{})

	handler := NewErrorHandler(nil, false)
	problem := handler.ErrorToProblem(err, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	fields, ok := problem.Extensions["errors"].([]ValidationError)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "Start", fields[0].Field)
	assert.Contains(t, fields[0].Message, "required")
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	handler := NewErrorHandler(nil, true)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), fmt.Errorf("boom"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
}

func TestErrorHandler_NotFoundAndMethod(t *testing.T) {
	handler := NewErrorHandler(nil, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeNotFound)

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/dashboard", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "DELETE")
}

func TestErrorHandler_JSON(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()

	handler.JSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusAccepted, map[string]string{"status": "queued"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"queued"}`, rec.Body.String())
}
