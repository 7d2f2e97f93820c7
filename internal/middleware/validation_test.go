package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "nordpulse/internal/errors"
)

type testQuery struct {
	ProductCategories []string `query:"product_category" validate:"max=50,dive,category"`
	NoProducts        bool     `query:"product_category_none" validate:"excluded_with=ProductCategories"`
	Start             string   `query:"start" validate:"omitempty,calendardate"`
	End               string   `query:"end" validate:"omitempty,calendardate"`
}

func newTestValidation() *ValidationMiddleware {
	return NewValidationMiddleware(nil, apierrors.NewErrorHandler(nil, false))
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		query      testQuery
		wantFields []string
	}{
		{name: "empty query", query: testQuery{}},
		{name: "valid dates", query: testQuery{Start: "2024-01-01", End: "2024-02-29"}},
		{name: "bad date format", query: testQuery{Start: "01/02/2024"}, wantFields: []string{"start"}},
		{name: "impossible date", query: testQuery{End: "2023-02-30"}, wantFields: []string{"end"}},
		{name: "blank category", query: testQuery{ProductCategories: []string{"Laptops", " "}}, wantFields: []string{"product_category[1]"}},
		{name: "none with categories", query: testQuery{ProductCategories: []string{"Laptops"}, NoProducts: true}, wantFields: []string{"product_category_none"}},
		{name: "none alone", query: testQuery{NoProducts: true}},
	}

	v := newTestValidation()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.query)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

			details, ok := apiErr.Details.([]apierrors.ValidationError)
			require.True(t, ok)
			fields := make([]string, 0, len(details))
			for _, d := range details {
				fields = append(fields, d.Field)
				assert.NotEmpty(t, d.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidate_WritesProblem(t *testing.T) {
	v := newTestValidation()
	rec := httptest.NewRecorder()

	ok := v.Validate(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard?start=bad", nil), testQuery{Start: "bad"})

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestQueryParamValidator_ValidateEnum(t *testing.T) {
	v := NewQueryParamValidator(nil, apierrors.NewErrorHandler(nil, false))
	allowed := []string{"csv", "xlsx"}

	rec := httptest.NewRecorder()
	got, ok := v.ValidateEnum(rec, httptest.NewRequest(http.MethodGet, "/export", nil), "format", allowed, "csv")
	assert.True(t, ok)
	assert.Equal(t, "csv", got)

	got, ok = v.ValidateEnum(rec, httptest.NewRequest(http.MethodGet, "/export?format=XLSX", nil), "format", allowed, "csv")
	assert.True(t, ok)
	assert.Equal(t, "xlsx", got)

	rec = httptest.NewRecorder()
	_, ok = v.ValidateEnum(rec, httptest.NewRequest(http.MethodGet, "/export?format=pdf", nil), "format", allowed, "csv")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "csv, xlsx")
}
