// Package analytics turns a loaded dataset into dashboard views.
//
// The pipeline is a chain of pure functions over []domain.Record:
//
//	universe := analytics.ExtractComplaintCategories(ds.Records)
//	view := analytics.Filter(ds.Records, universe, criteria)
//	kpis := analytics.CalculateKPIs(view, domain.DefaultTotalSystemComplaints)
//	weekly := analytics.WeeklySeries(view)
//
// Pipeline.Run wires the steps together, traces the run and reports
// ErrEmptyResult when the filters leave nothing to aggregate.
//
// Every function is deterministic. Aggregates use stable tie-breaks so
// repeated runs over the same dataset and criteria produce identical output.
package analytics
