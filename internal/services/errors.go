package services

import (
	"errors"

	"nordpulse/internal/dataset"
)

// ErrNoDatasetSource is returned when the service was built without a source
var ErrNoDatasetSource = errors.New("no dataset source configured")

// errNoSource wraps ErrNoDatasetSource so it is reported like any unreadable source
func errNoSource() error {
	return &dataset.DataSourceError{Source: "", Err: ErrNoDatasetSource}
}
