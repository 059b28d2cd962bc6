// Package domain contains the entities read by the task report pipeline
// (tasks, comments, users), the aggregate statistics computed over a date
// window, and the normalized request that identifies one report.
//
// Nothing in this package touches a store or a cache. Types here are shared
// by the query planner, the formatter, the service and the HTTP layer.
package domain
