package analytics

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is matched by errors.Is when a filter leaves no records
var ErrEmptyResult = errors.New("no data for the selected filters")

// EmptyResultError carries the sizes of the run that produced no records
type EmptyResultError struct {
	DatasetSize int
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%v (dataset has %d records)", ErrEmptyResult, e.DatasetSize)
}

// Is reports ErrEmptyResult as a match
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// IsEmptyResult reports whether err signals an empty filtered view
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
