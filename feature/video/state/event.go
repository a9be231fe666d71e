package state

import (
	"encoding/json"
	"fmt"

	"media-manager/core/utils"
)

// EventType identifies a provider event. The set is closed: the state machine
// matches exhaustively on these values and drops anything else.
type EventType string

const (
	// EventAssetCreated means the provider created an asset for an upload.
	EventAssetCreated EventType = "asset.created"
	// EventAssetReady means transcoding finished and the asset is playable.
	EventAssetReady EventType = "asset.ready"
	// EventAssetErrored means the provider failed to process the asset.
	EventAssetErrored EventType = "asset.errored"
	// EventUploadCancelled means the upload was cancelled before completion.
	EventUploadCancelled EventType = "upload.cancelled"
)

// Known reports whether t is part of the engine's closed event set.
// Unknown-but-authentic events are acknowledged and dropped, since the
// provider's event vocabulary grows over time.
func (t EventType) Known() bool {
	switch t {
	case EventAssetCreated, EventAssetReady, EventAssetErrored, EventUploadCancelled:
		return true
	default:
		return false
	}
}

// Payload carries the provider-reported metadata of an event.
type Payload struct {
	// Status is the provider-side asset status, when reported.
	Status string
	// Duration is the media duration in seconds; zero when not reported.
	Duration float64
	// AspectRatio is the display aspect ratio, when reported.
	AspectRatio string
	// PlaybackIDs are public playback identifiers, in provider order.
	PlaybackIDs []string
}

// Event is a single, decoded provider event.
type Event struct {
	Type EventType

	// ProviderAssetID is set for asset.* events.
	ProviderAssetID string

	// ProviderUploadID is set at least for upload.cancelled, whose asset id
	// may not exist yet.
	ProviderUploadID string

	// PassthroughID is the correlation token echoed back by the provider.
	// It is supplied at upload time and intended to equal the record id.
	PassthroughID string

	// Payload holds provider-reported metadata.
	Payload Payload
}

// DecodeEvent parses a raw provider webhook body into a typed Event.
// The provider's payloads are loosely shaped, so the data bag is picked apart
// field by field instead of being bound to a rigid struct.
func DecodeEvent(raw []byte) (*Event, error) {
	var wire struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode event body: %w", err)
	}
	if wire.Type == "" {
		return nil, fmt.Errorf("event body has no type")
	}

	ev := &Event{
		Type:             EventType(wire.Type),
		ProviderAssetID:  utils.ToString(wire.Data["id"]),
		ProviderUploadID: utils.ToString(wire.Data["upload_id"]),
		PassthroughID:    utils.ToString(wire.Data["passthrough"]),
		Payload: Payload{
			Status:      utils.ToString(wire.Data["status"]),
			Duration:    utils.ToFloat64(wire.Data["duration"]),
			AspectRatio: utils.ToString(wire.Data["aspect_ratio"]),
		},
	}

	// playback_ids arrives as a list of {id, policy} objects.
	if list, ok := wire.Data["playback_ids"].([]any); ok {
		for _, entry := range list {
			if obj, ok := entry.(map[string]any); ok {
				if id := utils.ToString(obj["id"]); id != "" {
					ev.Payload.PlaybackIDs = append(ev.Payload.PlaybackIDs, id)
				}
			}
		}
	}

	// upload.cancelled payloads carry the upload id as the object id.
	if ev.Type == EventUploadCancelled && ev.ProviderUploadID == "" {
		ev.ProviderUploadID = utils.ToString(wire.Data["id"])
		ev.ProviderAssetID = ""
	}

	return ev, nil
}
