package testutil

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
)

func TestDatasetCSV(t *testing.T) {
	records := SampleRecords()
	rows, err := csv.NewReader(strings.NewReader(string(DatasetCSV(t, records)))).ReadAll()
	if err != nil {
		t.Fatalf("csv output does not parse: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("Expected %d rows, got %d", len(records)+1, len(rows))
	}
	if rows[0][0] != "Transaction_ID" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if got := rows[5][6]; got != "Delivery, Quality" {
		t.Errorf("Expected multi-label complaint field to survive quoting, got %q", got)
	}
	if got := rows[1][1]; got != "2024-01-01" {
		t.Errorf("Expected ISO date, got %q", got)
	}
}

func TestWriteDatasetCSV(t *testing.T) {
	path := WriteDatasetCSV(t, "sales.csv", SampleRecords())
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("dataset file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("dataset file is empty")
	}
}
