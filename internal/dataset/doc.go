// Package dataset reads the sales and complaints dataset from tabular files
// and keeps the normalized records in a time-bounded cache.
//
// # Normalization
//
// Every row becomes a domain.Record. Numeric fields that cannot be parsed are
// coerced to zero through ParseNumericOrDefault instead
// of failing the load. Rows without a parseable date are skipped and counted
// in Dataset.SkippedRows.
//
// # Formats
//
// CSV files are read with encoding/csv. XLSX workbooks are read with excelize,
// using the configured sheet or the first sheet of the workbook.
//
// # Caching
//
//	cache := dataset.NewCache(loader, 10*time.Minute, dataset.WithLogger(logger))
//	ds, err := cache.Get(ctx, dataset.NewFileSource("enriched_data.csv"))
//
// Concurrent misses for the same source share a single load.
package dataset
