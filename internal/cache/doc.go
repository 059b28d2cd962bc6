// Package cache stores serialized report payloads under string keys with a
// per-entry TTL. Backends: an in-process LRU (memory), an embedded badger
// database (badger) and a no-op store (none).
//
// Every backend failure is wrapped in ErrCacheUnavailable so callers can
// degrade to an uncached path.
package cache
