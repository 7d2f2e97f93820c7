package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"nordpulse/pkg/contracts/domain"
)

// DatasetHeader is the column order written by WriteDatasetCSV
var DatasetHeader = []string{
	"Transaction_ID", "Date", "Product_Name", "Product_Category",
	"Price", "Status", "category", "complaint_count",
}

// Day returns midnight UTC for the given calendar date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SampleRecords returns a small dataset spanning two weeks of January 2024.
// Laptops and Phones each have one processed return; T5 has two labels.
func SampleRecords() []domain.Record {
	return []domain.Record{
		{TransactionID: "T1", Date: Day(2024, 1, 1), ProductName: "Laptop Pro", ProductCategory: "Laptops", Price: 1200, Status: "Completed", ComplaintCategory: domain.NoComplaintsSentinel},
		{TransactionID: "T2", Date: Day(2024, 1, 3), ProductName: "Laptop Pro", ProductCategory: "Laptops", Price: 1200, Status: domain.StatusProcessed, ComplaintCategory: "Delivery", ComplaintCount: 1},
		{TransactionID: "T3", Date: Day(2024, 1, 5), ProductName: "Phone X", ProductCategory: "Phones", Price: 800, Status: "Completed", ComplaintCategory: domain.NoComplaintsSentinel},
		{TransactionID: "T4", Date: Day(2024, 1, 9), ProductName: "Phone X", ProductCategory: "Phones", Price: 800, Status: domain.StatusProcessed, ComplaintCategory: "Quality", ComplaintCount: 2},
		{TransactionID: "T5", Date: Day(2024, 1, 10), ProductName: "Hub Mini", ProductCategory: "Smart Home", Price: 150, Status: "Completed", ComplaintCategory: "Delivery, Quality", ComplaintCount: 1},
	}
}

// DatasetCSV renders records as CSV with DatasetHeader
func DatasetCSV(t testing.TB, records []domain.Record) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(DatasetHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, r := range records {
		row := []string{
			r.TransactionID,
			r.Date.Format(domain.DateLayout),
			r.ProductName,
			r.ProductCategory,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			r.Status,
			r.ComplaintCategory,
			strconv.FormatFloat(r.ComplaintCount, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			t.Fatalf("write row %s: %v", r.TransactionID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return buf.Bytes()
}

// WriteDatasetCSV writes records to name inside a temp directory and returns the path
func WriteDatasetCSV(t testing.TB, name string, records []domain.Record) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, DatasetCSV(t, records), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
