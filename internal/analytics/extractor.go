package analytics

import (
	"sort"

	"nordpulse/pkg/contracts/domain"
)

// ExtractComplaintCategories returns the sorted, deduplicated complaint labels
// found across records. Records carrying the sentinel contribute nothing.
func ExtractComplaintCategories(records []domain.Record) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)

	for _, rec := range records {
		for _, label := range rec.ComplaintLabels() {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}

	sort.Strings(labels)
	return labels
}
