package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	// StatusProcessed marks a completed return or refund
	StatusProcessed = "Processed"

	// NoComplaintsSentinel is the complaint field value for records without complaint labels
	NoComplaintsSentinel = "No complaints"

	// ComplaintLabelSeparator separates labels inside a complaint field
	ComplaintLabelSeparator = ", "
)

// Record represents a single sales transaction with its complaint context
type Record struct {
	TransactionID     string    `json:"transaction_id"`
	Date              time.Time `json:"date"`
	Price             float64   `json:"price" validate:"min=0"`
	ProductName       string    `json:"product_name"`
	ProductCategory   string    `json:"product_category" validate:"required"`
	Status            string    `json:"status" validate:"required"`
	ComplaintCategory string    `json:"complaint_category"`
	ComplaintCount    float64   `json:"complaint_count" validate:"min=0"`
}

// IsReturn reports whether the record is a processed return
func (r Record) IsReturn() bool {
	return r.Status == StatusProcessed
}

// HasComplaints reports whether the complaint field carries labels
func (r Record) HasComplaints() bool {
	return r.ComplaintCategory != NoComplaintsSentinel && strings.TrimSpace(r.ComplaintCategory) != ""
}

// ComplaintLabels splits the complaint field into its labels.
// Returns nil for the sentinel value.
func (r Record) ComplaintLabels() []string {
	if !r.HasComplaints() {
		return nil
	}
	return SplitComplaintLabels(r.ComplaintCategory)
}

// SplitComplaintLabels splits a complaint field on the label separator and drops empty fragments
func SplitComplaintLabels(field string) []string {
	parts := strings.Split(field, ComplaintLabelSeparator)
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// Dataset is an immutable snapshot of records read from one source
type Dataset struct {
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  []Record  `json:"-"`

	// SkippedRows counts input rows dropped because they had no parseable date
	SkippedRows int `json:"skipped_rows"`
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// ProductCategories returns the sorted distinct product categories
func (d *Dataset) ProductCategories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	if d == nil {
		return categories
	}
	for _, rec := range d.Records {
		if _, ok := seen[rec.ProductCategory]; ok {
			continue
		}
		seen[rec.ProductCategory] = struct{}{}
		categories = append(categories, rec.ProductCategory)
	}
	sort.Strings(categories)
	return categories
}

// DateBounds returns the earliest and latest record dates.
// ok is false for an empty dataset.
func (d *Dataset) DateBounds() (min, max time.Time, ok bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.Records[0].Date, d.Records[0].Date
	for _, rec := range d.Records[1:] {
		if rec.Date.Before(min) {
			min = rec.Date
		}
		if rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max, true
}
