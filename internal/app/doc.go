// Package app wires configuration, logging, telemetry, the dataset cache, the
// analytics pipeline and the HTTP layer into a runnable server.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, the YAML file and NORDPULSE_* variables
//  2. Initialize slog and OpenTelemetry (Prometheus metrics, optional tracing)
//  3. Build the dataset loader and TTL cache
//  4. Build the analytics pipeline, product exporter and services
//  5. Mount the chi router and middleware chain
//  6. Start the HTTP server and preload the dataset
//
// # Routes
//
//	GET  /api/dashboard                  KPIs, weekly series and summaries
//	GET  /api/dashboard/products/export  product summary as CSV or XLSX
//	GET  /api/filters                    selectable categories and date bounds
//	POST /api/dataset/reload             drop the cached dataset and load it again
//	GET  /api/health[/ready|/live]       health checks
//	GET  /api/version                    build information
//	GET  /metrics                        Prometheus exposition
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Initialization errors are returned to the caller. The package never calls os.Exit.
package app
