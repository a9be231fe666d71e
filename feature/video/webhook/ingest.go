package webhook

import (
	"context"
	"errors"
	"fmt"

	"media-manager/feature/video/models"
	"media-manager/feature/video/reconcile"
	"media-manager/feature/video/state"
	"media-manager/feature/video/store"

	"go.uber.org/zap"
)

// casMaxRetries bounds the read-compute-write loop when a delivery races a
// concurrent writer on the same record.
const casMaxRetries = 3

// IngestResult reports what a delivery did.
type IngestResult struct {
	// EventType is the decoded provider event type.
	EventType state.EventType `json:"event_type"`
	// Outcome is the transition outcome (applied, no_change, dropped).
	Outcome state.Outcome `json:"outcome"`
	// RecordID is the affected record, empty for drops.
	RecordID string `json:"record_id,omitempty"`
	// Reason explains dropped/no-change outcomes.
	Reason string `json:"reason,omitempty"`
}

// Ingestor applies one provider event at a time: verify, resolve the target
// record, run the state machine, persist with compare-and-swap, then run side
// effects. Safe under concurrent and duplicate delivery.
type Ingestor struct {
	store    store.Store
	verifier *Verifier
	ensurer  *reconcile.Ensurer
	archiver *Archiver
	logger   *zap.Logger
}

// NewIngestor creates a webhook ingestor. archiver may be nil when the event
// archive is not configured.
func NewIngestor(st store.Store, verifier *Verifier, ensurer *reconcile.Ensurer, archiver *Archiver, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		store:    st,
		verifier: verifier,
		ensurer:  ensurer,
		archiver: archiver,
		logger:   logger,
	}
}

// Ingest processes a single delivery. Error cases the caller must map to
// transport responses: ErrVerification rejects without touching state; a
// decode failure rejects as malformed; store.ErrConflict after exhausted
// retries asks the provider to redeliver. Routing misses and unrecognized
// event types are acknowledged drops, not errors.
func (i *Ingestor) Ingest(ctx context.Context, rawBody []byte, signatureHeader string) (*IngestResult, error) {
	ev, err := i.verifier.Verify(rawBody, signatureHeader)
	if err != nil {
		return nil, err
	}

	if i.archiver != nil {
		i.archiver.Archive(ctx, ev, rawBody)
	}

	if !ev.Type.Known() {
		// Authentic but outside the closed set; the provider's vocabulary
		// grows over time and unknown types must not bounce.
		i.logger.Info("Acknowledged unrecognized event type", zap.String("type", string(ev.Type)))
		return &IngestResult{EventType: ev.Type, Outcome: state.OutcomeDropped, Reason: "unrecognized event type"}, nil
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		rec, err := i.resolve(ctx, ev)
		if err != nil {
			return nil, err
		}

		tr := state.Apply(rec, ev)
		if tr.Outcome == state.OutcomeDropped {
			// Expected under provider retries after upstream deletions.
			i.logger.Warn("Dropped event with no matching record",
				zap.String("type", string(ev.Type)),
				zap.String("passthrough", ev.PassthroughID),
				zap.String("provider_asset_id", ev.ProviderAssetID),
				zap.String("provider_upload_id", ev.ProviderUploadID),
			)
			return &IngestResult{EventType: ev.Type, Outcome: tr.Outcome, Reason: tr.Reason}, nil
		}

		// No-change transitions still persist to refresh the version token,
		// which is what makes duplicate deliveries observable as handled.
		updated, err := i.store.CompareAndSwap(ctx, rec.ID, rec.UpdatedAt, tr.Record)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			// Deleted mid-flight; same as never matching.
			return &IngestResult{EventType: ev.Type, Outcome: state.OutcomeDropped, Reason: "record deleted during ingest"}, nil
		}
		if err != nil {
			return nil, err
		}

		i.runEffects(ctx, tr.Effects, updated)

		i.logger.Info("Applied event",
			zap.String("type", string(ev.Type)),
			zap.String("record_id", updated.ID),
			zap.String("outcome", string(tr.Outcome)),
		)
		return &IngestResult{EventType: ev.Type, Outcome: tr.Outcome, RecordID: updated.ID, Reason: tr.Reason}, nil
	}

	// Never silently drop a structurally valid event: surface the conflict so
	// the provider's delivery retry becomes the backstop.
	return nil, fmt.Errorf("record contended across %d attempts: %w", casMaxRetries, store.ErrConflict)
}

// resolve finds the record an event addresses: the passthrough correlation
// token first, then the provider asset id, then the upload id. Cancellations
// resolve by upload id because the asset may not exist yet.
func (i *Ingestor) resolve(ctx context.Context, ev *state.Event) (*models.AssetRecord, error) {
	type lookup struct {
		key string
		fn  func(context.Context, string) (*models.AssetRecord, error)
	}

	var lookups []lookup
	if ev.Type == state.EventUploadCancelled {
		lookups = []lookup{
			{ev.ProviderUploadID, i.store.GetByProviderUploadID},
			{ev.PassthroughID, i.store.GetByID},
		}
	} else {
		lookups = []lookup{
			{ev.PassthroughID, i.store.GetByID},
			{ev.ProviderAssetID, i.store.GetByProviderAssetID},
			{ev.ProviderUploadID, i.store.GetByProviderUploadID},
		}
	}

	for _, l := range lookups {
		if l.key == "" {
			continue
		}
		rec, err := l.fn(ctx, l.key)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func (i *Ingestor) runEffects(ctx context.Context, effects []state.SideEffect, rec *models.AssetRecord) {
	for _, effect := range effects {
		switch effect {
		case state.EffectEnsurePlaybackID:
			if _, err := i.ensurer.Ensure(ctx, rec); err != nil {
				// The sweep retries this on its next pass.
				i.logger.Warn("Playback id ensure failed after ingest",
					zap.String("record_id", rec.ID),
					zap.Error(err),
				)
			}
		}
	}
}
