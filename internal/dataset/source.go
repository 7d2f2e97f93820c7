package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the tabular encoding of a source
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Source is a readable dataset location. Name doubles as the cache key.
type Source interface {
	Name() string
	Format() Format
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a dataset from the local file system
type FileSource struct {
	Path  string
	Sheet string // XLSX only; empty selects the first sheet
}

// NewFileSource creates a file source, inferring the format from the extension
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the cleaned file path
func (s *FileSource) Name() string {
	return filepath.Clean(s.Path)
}

// Format returns FormatXLSX for .xlsx files and FormatCSV otherwise
func (s *FileSource) Format() Format {
	if strings.EqualFold(filepath.Ext(s.Path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Open opens the file for reading
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path)
}

// sheetSource is implemented by sources that select a workbook sheet
type sheetSource interface {
	SheetName() string
}

// SheetName returns the configured sheet
func (s *FileSource) SheetName() string {
	return s.Sheet
}

// ReaderSource wraps in-memory content, mainly for uploads and tests
type ReaderSource struct {
	SourceName string
	Kind       Format
	Content    []byte
}

// Name returns the configured source name
func (s *ReaderSource) Name() string {
	return s.SourceName
}

// Format returns the configured format, defaulting to CSV
func (s *ReaderSource) Format() Format {
	if s.Kind == "" {
		return FormatCSV
	}
	return s.Kind
}

// Open returns a reader over the content
func (s *ReaderSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(string(s.Content))), nil
}
