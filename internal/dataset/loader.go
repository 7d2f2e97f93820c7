package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"nordpulse/pkg/contracts/domain"
)

// Column names expected in the dataset header
const (
	ColumnDate              = "Date"
	ColumnPrice             = "Price"
	ColumnProductCategory   = "Product_Category"
	ColumnProductName       = "Product_Name"
	ColumnStatus            = "Status"
	ColumnTransactionID     = "Transaction_ID"
	ColumnComplaintCategory = "category"
	ColumnComplaintCount    = "complaint_count"
)

// requiredColumns must all be present in the header row
var requiredColumns = []string{
	ColumnDate,
	ColumnPrice,
	ColumnProductCategory,
	ColumnProductName,
	ColumnStatus,
	ColumnTransactionID,
	ColumnComplaintCategory,
	ColumnComplaintCount,
}

// Clock returns the current time. Injected so cache expiry can be tested.
type Clock func() time.Time

// Loader reads and normalizes datasets
type Loader struct {
	logger *slog.Logger
	clock  Clock
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger.With(slog.String("component", "dataset_loader")),
		clock:  time.Now,
	}
}

// Load reads every record from the source. Any failure to open or decode the
// source is returned as a *DataSourceError.
func (l *Loader) Load(ctx context.Context, src Source) (*domain.Dataset, error) {
	start := l.clock()

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}
	defer rc.Close()

	var rows [][]string
	switch src.Format() {
	case FormatXLSX:
		sheet := ""
		if s, ok := src.(sheetSource); ok {
			sheet = s.SheetName()
		}
		rows, err = readXLSX(rc, sheet)
	default:
		rows, err = readCSV(rc)
	}
	if err != nil {
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}

	ds, err := buildDataset(rows)
	if err != nil {
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}
	ds.Source = src.Name()
	ds.LoadedAt = l.clock()

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", ds.Source),
		slog.String("format", string(src.Format())),
		slog.Int("records", len(ds.Records)),
		slog.Int("skipped_rows", ds.SkippedRows),
		slog.Duration("duration", ds.LoadedAt.Sub(start)))

	if ds.SkippedRows > 0 {
		l.logger.WarnContext(ctx, "rows without a valid date were skipped",
			slog.String("source", ds.Source),
			slog.Int("skipped_rows", ds.SkippedRows))
	}

	return ds, nil
}

// readCSV reads all rows, stripping a UTF-8 BOM if present
func readCSV(r io.Reader) ([][]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// readXLSX reads all rows of the named sheet, or the first sheet when empty
func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// buildDataset maps raw rows onto records using the header row
func buildDataset(rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	get := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ds := &domain.Dataset{Records: make([]domain.Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		date, ok := ParseDate(get(row, ColumnDate))
		if !ok {
			ds.SkippedRows++
			continue
		}
		ds.Records = append(ds.Records, domain.Record{
			TransactionID:     get(row, ColumnTransactionID),
			Date:              date,
			Price:             ParseNumericOrDefault(get(row, ColumnPrice), 0),
			ProductName:       get(row, ColumnProductName),
			ProductCategory:   get(row, ColumnProductCategory),
			Status:            get(row, ColumnStatus),
			ComplaintCategory: normalizeComplaintField(get(row, ColumnComplaintCategory)),
			ComplaintCount:    ParseNumericOrDefault(get(row, ColumnComplaintCount), 0),
		})
	}
	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
