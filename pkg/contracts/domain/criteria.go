package domain

import "time"

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// Selection is a multi-select value. A zero Selection means the user never
// touched the widget and the default (everything) applies; an explicit empty
// Selection means nothing was selected.
type Selection struct {
	Values []string `json:"values"`
	Set    bool     `json:"set"`
}

// All returns a Selection that was not supplied by the caller
func All() Selection {
	return Selection{}
}

// Only returns an explicit selection of the given values.
// Calling it with no values yields an explicit empty selection.
func Only(values ...string) Selection {
	v := make([]string, len(values))
	copy(v, values)
	return Selection{Values: v, Set: true}
}

// IsEmpty reports whether the selection was supplied with no values
func (s Selection) IsEmpty() bool {
	return s.Set && len(s.Values) == 0
}

// DateRange is an inclusive calendar date interval. Either end may be absent
// while the user is still picking dates.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// NewDateRange builds a two-sided range
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: &start, End: &end}
}

// IsComplete reports whether both endpoints are present
func (r DateRange) IsComplete() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t falls within the range, comparing calendar dates.
// Incomplete ranges contain every date.
func (r DateRange) Contains(t time.Time) bool {
	if !r.IsComplete() {
		return true
	}
	day := TruncateToDay(t)
	return !day.Before(TruncateToDay(*r.Start)) && !day.After(TruncateToDay(*r.End))
}

// FilterCriteria holds the user's current filter selection
type FilterCriteria struct {
	ProductCategories   Selection `json:"product_categories"`
	ComplaintCategories Selection `json:"complaint_categories"`
	DateRange           DateRange `json:"date_range"`
}

// TruncateToDay drops the time-of-day component, keeping the calendar date in UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
