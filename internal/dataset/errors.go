package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped when a required column is absent from the header
var ErrMissingColumn = errors.New("missing required column")

// DataSourceError reports that a dataset source could not be read.
// It aborts the whole pipeline run.
type DataSourceError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q unavailable: %v", e.Source, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsDataSourceError reports whether err is or wraps a DataSourceError
func IsDataSourceError(err error) bool {
	var dsErr *DataSourceError
	return errors.As(err, &dsErr)
}
