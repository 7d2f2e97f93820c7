package analytics

import (
	"sort"
	"time"

	"nordpulse/pkg/contracts/domain"
)

// WeekStart returns the Monday starting the calendar week containing t
func WeekStart(t time.Time) time.Time {
	day := domain.TruncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklySeries buckets revenue and returns by week, ascending by week start.
// Only weeks containing at least one record appear.
func WeeklySeries(view []domain.Record) []domain.WeeklyPoint {
	buckets := make(map[time.Time]*domain.WeeklyPoint)
	for _, rec := range view {
		week := WeekStart(rec.Date)
		point, ok := buckets[week]
		if !ok {
			point = &domain.WeeklyPoint{WeekStart: week}
			buckets[week] = point
		}
		point.Revenue += rec.Price
		if rec.IsReturn() {
			point.Returns++
		}
	}

	series := make([]domain.WeeklyPoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekStart.Before(series[j].WeekStart)
	})
	return series
}

// CategoryReturnRates computes the return rate per product category,
// ascending by rate with ties broken by category name
func CategoryReturnRates(view []domain.Record) []domain.CategoryReturnRate {
	groups := make(map[string]*domain.CategoryReturnRate)
	for _, rec := range view {
		group, ok := groups[rec.ProductCategory]
		if !ok {
			group = &domain.CategoryReturnRate{Category: rec.ProductCategory}
			groups[rec.ProductCategory] = group
		}
		group.Transactions++
		if rec.IsReturn() {
			group.Returns++
		}
	}

	rates := make([]domain.CategoryReturnRate, 0, len(groups))
	for _, group := range groups {
		group.ReturnRate = percentage(group.Returns, group.Transactions)
		rates = append(rates, *group)
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].ReturnRate != rates[j].ReturnRate {
			return rates[i].ReturnRate < rates[j].ReturnRate
		}
		return rates[i].Category < rates[j].Category
	})
	return rates
}

// ComplaintFrequency counts label occurrences over records with complaints.
// A record carrying several labels counts once per label. Sorted ascending by
// count, ties by label.
func ComplaintFrequency(view []domain.Record) []domain.LabelCount {
	counts := make(map[string]int)
	for _, rec := range view {
		for _, label := range rec.ComplaintLabels() {
			counts[label]++
		}
	}

	freq := make([]domain.LabelCount, 0, len(counts))
	for label, count := range counts {
		freq = append(freq, domain.LabelCount{Label: label, Count: count})
	}
	sort.Slice(freq, func(i, j int) bool {
		if freq[i].Count != freq[j].Count {
			return freq[i].Count < freq[j].Count
		}
		return freq[i].Label < freq[j].Label
	})
	return freq
}

// ProductSummary tallies sales, returns and linked complaints per product,
// descending by returns with ties broken by product name
func ProductSummary(view []domain.Record) []domain.ProductSummaryRow {
	type tally struct {
		row        domain.ProductSummaryRow
		complaints float64
	}
	groups := make(map[string]*tally)
	for _, rec := range view {
		g, ok := groups[rec.ProductName]
		if !ok {
			g = &tally{row: domain.ProductSummaryRow{ProductName: rec.ProductName}}
			groups[rec.ProductName] = g
		}
		g.row.Sales++
		g.complaints += rec.ComplaintCount
		if rec.IsReturn() {
			g.row.Returns++
		}
	}

	rows := make([]domain.ProductSummaryRow, 0, len(groups))
	for _, g := range groups {
		g.row.Complaints = int(g.complaints)
		rows = append(rows, g.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Returns != rows[j].Returns {
			return rows[i].Returns > rows[j].Returns
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows
}
