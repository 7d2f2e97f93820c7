// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a capturing slog handler and dataset
// fixtures (sample records and CSV writers) for package tests.
package shared
