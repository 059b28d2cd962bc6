// Package report builds the task report: the Planner runs the five store
// queries, FormatTasks joins each task with the precomputed aggregates, and
// Generator wraps one run with perf instrumentation and tracing to produce
// a TaskReport payload.
//
// Nothing here caches. See internal/service for the cached entry point.
package report
