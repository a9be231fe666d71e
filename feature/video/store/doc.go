// Package store provides persistence for video asset records.
//
// The Store interface is the engine's only shared mutable resource. It is
// deliberately narrow: keyed lookups (internal id, provider asset id, provider
// upload id), the sweep's attention queries, and a compare-and-swap write that
// uses the record's updated_at column as the version token.
//
// # Concurrency
//
// CompareAndSwap is the sole concurrency-control mechanism: a writer that
// loses the race gets ErrConflict, re-reads, and recomputes. Because all state
// transitions are idempotent the recomputation converges.
//
// GormStore is the MySQL-backed implementation; the mocks subpackage provides
// a testify mock for unit tests.
package store
