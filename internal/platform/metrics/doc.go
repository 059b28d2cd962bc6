// Package metrics owns the process-wide telemetry: Prometheus collectors
// for report generation and cache outcomes, and the OpenTelemetry tracer
// provider used by the report and cache packages.
package metrics
