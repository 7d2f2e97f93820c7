// Package services implements the business logic layer between HTTP
// handlers and the dataset and analytics packages.
//
// DashboardService owns the dataset cache and the analytics pipeline:
// every request reads the dataset through the cache, runs the pipeline
// with the request's filter criteria and returns the dashboard, filter
// options or an exported product table.
//
// HealthService reports liveness, readiness (dataset reachable, cache
// counters) and build information.
//
// Services take a *slog.Logger through their constructor and propagate
// context.Context for cancellation and tracing.
package services
