package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"nordpulse/internal/config"
)

// XLSXWriter writes single-sheet workbooks with excelize
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer. Relative file paths resolve into
// the exports directory of paths.
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// SheetOptions describes the single sheet of an exported workbook
type SheetOptions struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
	Widths  map[string]float64 // column letter to width
}

// Encode writes the workbook to out
func (w *XLSXWriter) Encode(out io.Writer, options SheetOptions) error {
	f, err := w.build(options)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteXLSX writes the workbook to a file and returns the resolved path
func (w *XLSXWriter) WriteXLSX(filePath string, options SheetOptions) (string, error) {
	fullPath := resolvePath(w.paths, filePath)

	w.logger.Info("Writing XLSX file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := w.build(options)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

func (w *XLSXWriter) build(options SheetOptions) (*excelize.File, error) {
	sheet := options.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if len(options.Headers) > 0 {
		headers := make([]interface{}, len(options.Headers))
		for i, h := range options.Headers {
			headers[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}

		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			last, _ := excelize.CoordinatesToCellName(len(headers), 1)
			_ = f.SetCellStyle(sheet, "A1", last, style)
		}
	}

	startRow := 1
	if len(options.Headers) > 0 {
		startRow = 2
	}
	for i, row := range options.Rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	for col, width := range options.Widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return f, nil
}
