// Package webhook implements the fast path of the engine: ingestion of
// provider-pushed events.
//
// A delivery flows verifier → state machine → store. The verifier checks an
// HMAC signature over the raw request body before anything is parsed; the
// ingestor resolves the target record, computes the transition, and persists
// it with the compare-and-swap discipline, retrying a bounded number of times
// when it races another writer. Side effects (issuing a playback id) run only
// after the write lands. Verified payloads are additionally archived to
// object storage for audit and replay.
//
// Duplicate deliveries are harmless by construction: transitions are
// idempotent per event type, so a re-applied event refreshes the version
// token and changes nothing else.
package webhook
