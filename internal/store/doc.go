// Package store defines the persistence contracts consumed by the task
// report pipeline. ReportStore is read-only; TaskWriter exists for seeding
// demo data and for tests. Implementations live under internal/platform.
package store
