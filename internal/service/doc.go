// Package service exposes the cached task report use case.
//
// ReportService decides between the two states of a request: HIT serves
// the stored payload with its cached flag set, MISS runs the report
// generator, stores the payload for the configured TTL and serves it. The
// cache only ever speeds things up. A failing or corrupt cache degrades to
// an uncached run, never to an error.
//
// Invalidation is TTL-only; concurrent misses on the same key may each run
// the generator, which is safe because generation has no side effects.
package service
