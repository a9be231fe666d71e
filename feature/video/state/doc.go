// Package state contains the typed provider event union and the pure state
// machine driving all asset record transitions.
//
// Both the webhook ingestor and the sweep reconciler go through Apply, so a
// drift repair computed from a bulk provider observation follows exactly the
// same transition rules as a pushed event. Apply never touches the store; it
// returns the next record state plus a list of side effects for the caller to
// run after the write lands.
//
// Transitions are idempotent per event type, which is what makes the
// compare-and-swap retry discipline converge: a writer that loses the race
// re-reads and recomputes, and a duplicate delivery produces a no-change
// transition instead of a second mutation.
package state
