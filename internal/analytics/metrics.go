package analytics

import (
	"nordpulse/pkg/contracts/domain"
)

// CalculateKPIs computes the scalar indicators over a filtered view.
// totalSystemComplaints is the fixed reference total the complaint share is
// measured against.
func CalculateKPIs(view []domain.Record, totalSystemComplaints int) domain.KPIs {
	kpis := domain.KPIs{
		TransactionCount:      len(view),
		TotalSystemComplaints: totalSystemComplaints,
	}

	var complaints float64
	for _, rec := range view {
		kpis.TotalRevenue += rec.Price
		complaints += rec.ComplaintCount
		if rec.IsReturn() {
			kpis.ReturnCount++
		}
	}
	// Counts may be fractional per record; only the total is truncated
	kpis.LinkedComplaints = int(complaints)

	kpis.ReturnRate = percentage(kpis.ReturnCount, len(view))
	kpis.ComplaintShare = percentage(kpis.LinkedComplaints, totalSystemComplaints)
	return kpis
}

// percentage returns part/whole*100, or 0 when whole is not positive
func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
