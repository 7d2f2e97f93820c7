// Package exporter writes dashboard tables to CSV and XLSX.
//
// CSVWriter and XLSXWriter handle the encodings; both can stream to an
// io.Writer for HTTP downloads or save into the exports directory.
// ProductExporter maps the product summary table onto either format.
//
// Example usage:
//
//	exp := exporter.NewProductExporter(paths, logger)
//	path, err := exp.ExportFile("products.xlsx", dashboard.ProductSummary)
package exporter
