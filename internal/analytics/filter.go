package analytics

import (
	"nordpulse/pkg/contracts/domain"
)

// Filter returns the records matching every active predicate, preserving
// input order. The input slice is never modified.
//
// Product categories: an unset selection keeps every category, an explicit
// empty selection keeps nothing.
//
// Complaint categories: the predicate only applies to a non-empty selection
// that differs from the universe. A record then passes when any of its labels
// is selected; records with no complaints fail.
//
// Dates: applied only when both ends of the range are present.
func Filter(records []domain.Record, universe []string, criteria domain.FilterCriteria) []domain.Record {
	products := productPredicate(criteria.ProductCategories)
	complaints := complaintPredicate(criteria.ComplaintCategories, universe)
	dates := criteria.DateRange

	view := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if !products(rec) || !complaints(rec) || !dates.Contains(rec.Date) {
			continue
		}
		view = append(view, rec)
	}
	return view
}

type predicate func(domain.Record) bool

func acceptAll(domain.Record) bool { return true }

func productPredicate(sel domain.Selection) predicate {
	if !sel.Set {
		return acceptAll
	}
	// An explicit empty selection deliberately matches nothing
	allowed := toSet(sel.Values)
	return func(rec domain.Record) bool {
		_, ok := allowed[rec.ProductCategory]
		return ok
	}
}

func complaintPredicate(sel domain.Selection, universe []string) predicate {
	if !sel.Set || len(sel.Values) == 0 {
		return acceptAll
	}
	selected := toSet(sel.Values)
	if sameSet(selected, toSet(universe)) {
		return acceptAll
	}
	return func(rec domain.Record) bool {
		for _, label := range rec.ComplaintLabels() {
			if _, ok := selected[label]; ok {
				return true
			}
		}
		return false
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
