// Package perf measures one report generation: wall-clock time, heap
// growth, and the number of store round trips. A Collector is created per
// run and carried in the context so store implementations can count the
// queries they issue without any package-level state.
package perf
