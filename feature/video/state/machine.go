package state

import (
	"fmt"

	"media-manager/feature/video/models"
)

// Outcome classifies the result of applying an event to a record.
type Outcome string

const (
	// OutcomeApplied means the record state changed.
	OutcomeApplied Outcome = "applied"
	// OutcomeNoChange means the event was a duplicate or stale; re-applying
	// leaves the record as it was (only the version token gets refreshed).
	OutcomeNoChange Outcome = "no_change"
	// OutcomeDropped means there is nothing to mutate: no matching record or
	// an event type outside the closed set.
	OutcomeDropped Outcome = "dropped"
)

// SideEffect is an action the caller must run after the transition persists.
type SideEffect string

// EffectEnsurePlaybackID asks the caller to run the playback identifier
// ensurer against the persisted record.
const EffectEnsurePlaybackID SideEffect = "ensure_playback_id"

// Transition is the output of the state machine: the next record state, an
// outcome tag, side effects to run after persisting, and a human-readable
// reason for dropped/no-change results.
type Transition struct {
	Record  *models.AssetRecord
	Outcome Outcome
	Effects []SideEffect
	Reason  string
}

// Apply computes the next record state for an event. It is pure: rec is never
// mutated and the returned record is a copy. rec may be nil when no record
// matched the event's identifiers; the transition is then a drop.
//
// Tie-breaks: cancelled is terminal and sticky against stale errors; a real
// (non-placeholder) playback id is never replaced by a different value, so
// out-of-order deliveries cannot thrash a confirmed identifier.
func Apply(rec *models.AssetRecord, ev *Event) Transition {
	if !ev.Type.Known() {
		return Transition{Outcome: OutcomeDropped, Reason: fmt.Sprintf("unrecognized event type %q", ev.Type)}
	}
	if rec == nil {
		return Transition{Outcome: OutcomeDropped, Reason: "no record matches event identifiers"}
	}

	next := *rec

	switch ev.Type {
	case EventAssetCreated:
		return applyCreated(rec, &next, ev)
	case EventAssetReady:
		return applyReady(rec, &next, ev)
	case EventAssetErrored:
		return applyErrored(rec, &next)
	case EventUploadCancelled:
		return applyCancelled(rec, &next)
	}

	// Unreachable: Known() covers the switch.
	return Transition{Outcome: OutcomeDropped, Reason: "unhandled event type"}
}

func applyCreated(rec, next *models.AssetRecord, ev *Event) Transition {
	if ev.ProviderAssetID != "" {
		next.ProviderAssetID = ev.ProviderAssetID
	}

	// Only non-settled records move to processing; a record that already
	// reached ready, error or cancelled is not downgraded by a stale create.
	switch rec.Status {
	case models.StatusUploading, models.StatusProcessing, models.StatusNeedsUpload:
		next.Status = models.StatusProcessing
	}

	if next.Status == rec.Status && next.ProviderAssetID == rec.ProviderAssetID {
		return Transition{Record: next, Outcome: OutcomeNoChange, Reason: "asset already created"}
	}
	return Transition{Record: next, Outcome: OutcomeApplied}
}

func applyReady(rec, next *models.AssetRecord, ev *Event) Transition {
	if rec.Status == models.StatusCancelled {
		return Transition{Record: next, Outcome: OutcomeNoChange, Reason: "cancelled is terminal"}
	}

	next.Status = models.StatusReady
	if ev.ProviderAssetID != "" {
		next.ProviderAssetID = ev.ProviderAssetID
	}
	if ev.Payload.Duration > 0 {
		next.Duration = ev.Payload.Duration
	}
	if ev.Payload.AspectRatio != "" {
		next.AspectRatio = ev.Payload.AspectRatio
	}

	if !rec.HasRealPlaybackID() {
		if len(ev.Payload.PlaybackIDs) > 0 {
			next.PlaybackID = ev.Payload.PlaybackIDs[0]
		} else if models.IsPlaceholderPlaybackID(rec.PlaybackID) {
			// Drop the sentinel; the ensurer fills in a real value.
			next.PlaybackID = ""
		}
	}

	var effects []SideEffect
	if !next.HasRealPlaybackID() {
		effects = append(effects, EffectEnsurePlaybackID)
	}

	if *next == *rec {
		return Transition{Record: next, Outcome: OutcomeNoChange, Effects: effects, Reason: "asset already ready"}
	}
	return Transition{Record: next, Outcome: OutcomeApplied, Effects: effects}
}

func applyErrored(rec, next *models.AssetRecord) Transition {
	if rec.Status == models.StatusCancelled {
		return Transition{Record: next, Outcome: OutcomeNoChange, Reason: "cancelled is terminal"}
	}
	if rec.Status == models.StatusError {
		return Transition{Record: next, Outcome: OutcomeNoChange, Reason: "already errored"}
	}
	next.Status = models.StatusError
	return Transition{Record: next, Outcome: OutcomeApplied}
}

func applyCancelled(rec, next *models.AssetRecord) Transition {
	if rec.Status == models.StatusCancelled {
		return Transition{Record: next, Outcome: OutcomeNoChange, Reason: "already cancelled"}
	}
	next.Status = models.StatusCancelled
	return Transition{Record: next, Outcome: OutcomeApplied}
}
