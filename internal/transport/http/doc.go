// Package http implements the HTTP handlers of the dashboard API.
//
// Handlers are thin: they decode and validate query parameters, call the
// service layer and render JSON with go-chi/render. Every error goes
// through the shared errors.ErrorHandler, which answers with RFC 7807
// problem details:
//
//	{
//	    "type": "/errors/data/no-data-for-filter",
//	    "title": "No Data For Filter",
//	    "status": 404,
//	    "detail": "No records match the selected filters",
//	    "instance": "/api/dashboard",
//	    "dataset_size": 1000
//	}
//
// Handlers depend on service interfaces so tests can substitute testify
// mocks.
package http
