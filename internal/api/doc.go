// Package api serves the task report over HTTP: it validates query
// parameters, applies the default window, calls the report service and
// shapes the payload into the public response envelope.
package api
