package reconcile

import (
	"context"
	"errors"
	"fmt"

	"media-manager/core/provider"
	"media-manager/feature/video/models"
	"media-manager/feature/video/store"

	"go.uber.org/zap"
)

// EnsureOutcome classifies the result of an ensure operation.
type EnsureOutcome string

const (
	// EnsureNoOp means the record already held a real playback id, or the
	// preconditions did not apply.
	EnsureNoOp EnsureOutcome = "noop"
	// EnsureAdopted means the provider already listed a playback id and the
	// record adopted the first one.
	EnsureAdopted EnsureOutcome = "adopted"
	// EnsureCreated means the provider issued a fresh playback id.
	EnsureCreated EnsureOutcome = "created"
)

// casMaxRetries bounds the read-compute-write retry loop on version conflicts.
const casMaxRetries = 3

// Ensurer guarantees that a ready asset record ends up with at least one real
// public playback identifier. The operation is idempotent and safe under
// concurrent invocation for the same record.
type Ensurer struct {
	store    store.Store
	provider provider.Client
	logger   *zap.Logger
}

// NewEnsurer creates a playback identifier ensurer.
func NewEnsurer(st store.Store, client provider.Client, logger *zap.Logger) *Ensurer {
	return &Ensurer{
		store:    st,
		provider: client,
		logger:   logger,
	}
}

// Ensure fills in a real playback id for rec if it lacks one. Records that are
// not ready, have no provider asset id, or already hold a real playback id are
// left alone. A concurrent ensure that loses the compare-and-swap race
// discovers the winning value on re-read and backs off instead of issuing a
// second identifier.
func (e *Ensurer) Ensure(ctx context.Context, rec *models.AssetRecord) (EnsureOutcome, error) {
	if rec.Status != models.StatusReady || rec.ProviderAssetID == "" {
		return EnsureNoOp, nil
	}
	if rec.HasRealPlaybackID() {
		return EnsureNoOp, nil
	}

	asset, err := e.provider.GetAsset(ctx, rec.ProviderAssetID)
	if err != nil {
		return EnsureNoOp, fmt.Errorf("failed to fetch asset %s: %w", rec.ProviderAssetID, err)
	}

	var playbackID string
	outcome := EnsureAdopted
	if len(asset.PlaybackIDs) > 0 {
		playbackID = asset.PlaybackIDs[0].ID
	} else {
		created, err := e.provider.CreatePlaybackID(ctx, rec.ProviderAssetID)
		if err != nil {
			return EnsureNoOp, fmt.Errorf("failed to create playback id for %s: %w", rec.ProviderAssetID, err)
		}
		playbackID = created.ID
		outcome = EnsureCreated
	}

	current := rec
	for attempt := 0; attempt < casMaxRetries; attempt++ {
		next := *current
		next.PlaybackID = playbackID

		_, err := e.store.CompareAndSwap(ctx, current.ID, current.UpdatedAt, &next)
		if errors.Is(err, store.ErrConflict) {
			current, err = e.store.GetByID(ctx, current.ID)
			if err != nil {
				return EnsureNoOp, fmt.Errorf("failed to re-read record after conflict: %w", err)
			}
			if current.HasRealPlaybackID() {
				// A concurrent writer won with a real value.
				return EnsureNoOp, nil
			}
			continue
		}
		if err != nil {
			return EnsureNoOp, err
		}

		e.logger.Info("Ensured playback id",
			zap.String("record_id", current.ID),
			zap.String("playback_id", playbackID),
			zap.String("outcome", string(outcome)),
		)
		return outcome, nil
	}

	return EnsureNoOp, store.ErrConflict
}
