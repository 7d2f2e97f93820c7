package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"nordpulse/internal/config"
	"nordpulse/pkg/contracts/domain"
)

// ProductSheetName names the worksheet of product summary workbooks
const ProductSheetName = "Product Summary"

// ProductHeaders are the column titles of the product summary table
var ProductHeaders = []string{"Product", "Sales", "Returns", "Complaints"}

// ProductExporter writes the per-product summary table as CSV or XLSX
type ProductExporter struct {
	csvWriter  *CSVWriter
	xlsxWriter *XLSXWriter
}

// NewProductExporter creates a new product summary exporter
func NewProductExporter(paths *config.Paths, logger *slog.Logger) *ProductExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "product_exporter"))
	return &ProductExporter{
		csvWriter:  NewCSVWriter(paths, logger),
		xlsxWriter: NewXLSXWriter(paths, logger),
	}
}

// Export writes rows to out in the given format, preserving row order
func (e *ProductExporter) Export(out io.Writer, format Format, rows []domain.ProductSummaryRow) error {
	switch format {
	case FormatCSV:
		return e.csvWriter.Encode(out, csvOptions(rows))
	case FormatXLSX:
		return e.xlsxWriter.Encode(out, sheetOptions(rows))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportFile writes rows to filePath, choosing the format from its extension.
// Returns the resolved path of the written file.
func (e *ProductExporter) ExportFile(filePath string, rows []domain.ProductSummaryRow) (string, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return "", err
	}
	if format == FormatXLSX {
		return e.xlsxWriter.WriteXLSX(filePath, sheetOptions(rows))
	}
	return e.csvWriter.WriteCSV(filePath, csvOptions(rows))
}

// ProductFileName returns the download name for an export taken at t
func ProductFileName(t time.Time, format Format) string {
	return "product_summary_" + t.UTC().Format("20060102") + format.Extension()
}

func csvOptions(rows []domain.ProductSummaryRow) WriteOptions {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ProductName,
			strconv.Itoa(row.Sales),
			strconv.Itoa(row.Returns),
			strconv.Itoa(row.Complaints),
		})
	}
	return WriteOptions{Headers: ProductHeaders, Records: records, BOMPrefix: true}
}

func sheetOptions(rows []domain.ProductSummaryRow) SheetOptions {
	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{row.ProductName, row.Sales, row.Returns, row.Complaints})
	}
	return SheetOptions{
		Sheet:   ProductSheetName,
		Headers: ProductHeaders,
		Rows:    data,
		Widths:  map[string]float64{"A": 32, "B": 10, "C": 10, "D": 12},
	}
}
