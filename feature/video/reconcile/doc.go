// Package reconcile implements the slow, corrective path of the engine: the
// sweep reconciler, the playback identifier ensurer, and the miskeyed-record
// repairer.
//
// The sweep compares local records against one bulk provider listing per
// pass, indexes the provider state in memory, and drives each mismatch
// through the same state machine the webhook path uses (via synthetic
// events). Records are reconciled with bounded concurrency; a failure on one
// record is recorded in the report and never aborts the pass. Concurrent
// full-sweep triggers are collapsed through singleflight.
//
// The ensurer and repairer are idempotent, re-runnable operations. They
// replace the pile of one-off fix scripts such systems tend to accrete:
// running them against an already-consistent store is a no-op.
package reconcile
