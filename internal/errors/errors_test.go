package errors

import (
	stderrors "errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	err := ErrValidation("start", "must be YYYY-MM-DD")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	assert.Equal(t, "Request validation failed", err.Error())
	assert.Equal(t, []ValidationError{{Field: "start", Message: "must be YYYY-MM-DD"}}, err.Details)

	invalid := InvalidRequestWithError(stderrors.New("bad query"))
	assert.Equal(t, "INVALID_REQUEST", invalid.ErrorCode)
	assert.Equal(t, "bad query", invalid.Details)
}

func TestAppError(t *testing.T) {
	cause := os.ErrClosed
	err := NewExportError("product export failed", cause).WithContext("format", "xlsx")

	assert.Equal(t, "[EXPORT] product export failed: file already closed", err.Error())
	assert.True(t, stderrors.Is(err, os.ErrClosed))
	assert.Equal(t, "xlsx", err.Context["format"])

	assert.Equal(t, "[EXPORT] no rows", NewAppError(ErrTypeExport, "no rows", nil).Error())
}
