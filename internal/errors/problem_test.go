package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNoDataForFilter, "No Data For Filter", "", "/api/dashboard").
		WithExtension("dataset_size", 7).
		WithExtension("status", 999)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Equal(t, float64(404), body["status"], "standard members win over extensions")
	assert.Equal(t, float64(7), body["dataset_size"])
	assert.NotContains(t, body, "detail")
}

func TestProblemDetails_Error(t *testing.T) {
	assert.Equal(t, "Conflict: busy", NewProblemDetails(409, "/x", "Conflict", "busy", "").Error())
	assert.Equal(t, "Conflict", NewProblemDetails(409, "/x", "Conflict", "", "").Error())
}

func TestProblemDetails_WithExtensionOnZeroValue(t *testing.T) {
	var problem ProblemDetails
	problem.WithExtension("k", "v")
	assert.Equal(t, "v", problem.Extensions["k"])
}
