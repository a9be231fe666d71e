package state

import (
	"testing"

	"media-manager/feature/video/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_NoRecord(t *testing.T) {
	tr := Apply(nil, &Event{Type: EventAssetCreated, PassthroughID: "ghost"})
	assert.Equal(t, OutcomeDropped, tr.Outcome)
	assert.Nil(t, tr.Record)
}

func TestApply_UnknownType(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusUploading}
	tr := Apply(rec, &Event{Type: EventType("asset.static_renditions.ready")})
	assert.Equal(t, OutcomeDropped, tr.Outcome)
}

func TestApply_Created(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusUploading, ProviderUploadID: "up-1"}
	ev := &Event{Type: EventAssetCreated, ProviderUploadID: "up-1", ProviderAssetID: "asset-1"}

	tr := Apply(rec, ev)
	require.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Equal(t, models.StatusProcessing, tr.Record.Status)
	assert.Equal(t, "asset-1", tr.Record.ProviderAssetID)
	assert.Equal(t, "u1", tr.Record.ID)

	// Original record untouched.
	assert.Equal(t, models.StatusUploading, rec.Status)
}

func TestApply_Created_Idempotent(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusUploading}
	ev := &Event{Type: EventAssetCreated, ProviderAssetID: "asset-1"}

	first := Apply(rec, ev)
	second := Apply(first.Record, ev)

	assert.Equal(t, OutcomeApplied, first.Outcome)
	assert.Equal(t, OutcomeNoChange, second.Outcome)
	assert.Equal(t, *first.Record, *second.Record)
}

func TestApply_Created_DoesNotDowngradeReady(t *testing.T) {
	rec := &models.AssetRecord{ID: "asset-1", Status: models.StatusReady, ProviderAssetID: "asset-1", PlaybackID: "pb-1"}
	tr := Apply(rec, &Event{Type: EventAssetCreated, ProviderAssetID: "asset-1"})
	assert.Equal(t, OutcomeNoChange, tr.Outcome)
	assert.Equal(t, models.StatusReady, tr.Record.Status)
}

func TestApply_Ready(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusProcessing, ProviderAssetID: "asset-1"}
	ev := &Event{
		Type:            EventAssetReady,
		ProviderAssetID: "asset-1",
		Payload:         Payload{Duration: 120, AspectRatio: "16:9", PlaybackIDs: []string{"pb-1", "pb-2"}},
	}

	tr := Apply(rec, ev)
	require.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Equal(t, models.StatusReady, tr.Record.Status)
	assert.Equal(t, 120.0, tr.Record.Duration)
	assert.Equal(t, "16:9", tr.Record.AspectRatio)
	assert.Equal(t, "pb-1", tr.Record.PlaybackID)
	assert.Empty(t, tr.Effects)
}

func TestApply_Ready_Idempotent(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusProcessing, ProviderAssetID: "asset-1"}
	ev := &Event{Type: EventAssetReady, ProviderAssetID: "asset-1", Payload: Payload{Duration: 60, PlaybackIDs: []string{"pb-1"}}}

	first := Apply(rec, ev)
	second := Apply(first.Record, ev)

	assert.Equal(t, OutcomeNoChange, second.Outcome)
	assert.Equal(t, *first.Record, *second.Record)
}

func TestApply_Ready_NeverReplacesRealPlaybackID(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusReady, ProviderAssetID: "asset-1", PlaybackID: "pb-1"}
	ev := &Event{Type: EventAssetReady, ProviderAssetID: "asset-1", Payload: Payload{PlaybackIDs: []string{"pb-other"}}}

	tr := Apply(rec, ev)
	assert.Equal(t, "pb-1", tr.Record.PlaybackID)
}

func TestApply_Ready_ReplacesPlaceholder(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusReady, ProviderAssetID: "asset-2", PlaybackID: "placeholder-xyz"}
	ev := &Event{Type: EventAssetReady, ProviderAssetID: "asset-2", Payload: Payload{PlaybackIDs: []string{"pb-2"}}}

	tr := Apply(rec, ev)
	require.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Equal(t, "pb-2", tr.Record.PlaybackID)
}

func TestApply_Ready_NoPlaybackInPayload(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusProcessing, ProviderAssetID: "asset-1", PlaybackID: "placeholder-1"}
	ev := &Event{Type: EventAssetReady, ProviderAssetID: "asset-1"}

	tr := Apply(rec, ev)
	require.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Empty(t, tr.Record.PlaybackID)
	assert.Contains(t, tr.Effects, EffectEnsurePlaybackID)
}

func TestApply_Errored(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusProcessing}
	tr := Apply(rec, &Event{Type: EventAssetErrored, ProviderAssetID: "asset-1"})
	assert.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Equal(t, models.StatusError, tr.Record.Status)
}

func TestApply_Errored_DoesNotOverrideCancelled(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusCancelled}
	tr := Apply(rec, &Event{Type: EventAssetErrored, ProviderAssetID: "asset-1"})
	assert.Equal(t, OutcomeNoChange, tr.Outcome)
	assert.Equal(t, models.StatusCancelled, tr.Record.Status)
}

func TestApply_Cancelled(t *testing.T) {
	rec := &models.AssetRecord{ID: "u1", Status: models.StatusUploading, ProviderUploadID: "up-1"}
	tr := Apply(rec, &Event{Type: EventUploadCancelled, ProviderUploadID: "up-1"})
	assert.Equal(t, OutcomeApplied, tr.Outcome)
	assert.Equal(t, models.StatusCancelled, tr.Record.Status)
}

// Out-of-order delivery: ready before created converges to the same record as
// the natural order, without the created event downgrading the ready state.
func TestApply_ConvergenceUnderReordering(t *testing.T) {
	created := &Event{Type: EventAssetCreated, ProviderAssetID: "asset-1"}
	ready := &Event{Type: EventAssetReady, ProviderAssetID: "asset-1", Payload: Payload{Duration: 120, PlaybackIDs: []string{"pb-1"}}}

	inOrder := &models.AssetRecord{ID: "u1", Status: models.StatusUploading}
	tr := Apply(inOrder, created)
	tr = Apply(tr.Record, ready)
	want := *tr.Record

	reordered := &models.AssetRecord{ID: "u1", Status: models.StatusUploading}
	tr = Apply(reordered, ready)
	tr = Apply(tr.Record, created)

	assert.Equal(t, want, *tr.Record)
}
