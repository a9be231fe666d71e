package models

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a video asset record.
type Status string

const (
	// StatusUploading means an upload slot was handed out but the provider
	// has not created an asset for it yet.
	StatusUploading Status = "uploading"
	// StatusProcessing means the provider created the asset and is transcoding it.
	StatusProcessing Status = "processing"
	// StatusReady means the provider finished transcoding and the asset is playable.
	StatusReady Status = "ready"
	// StatusError means the provider reported a failure, or the asset vanished upstream.
	StatusError Status = "error"
	// StatusCancelled means the upload was cancelled before an asset existed.
	// Cancellation is terminal and wins over stale error events.
	StatusCancelled Status = "cancelled"
	// StatusNeedsUpload marks a record that claimed to be ready without ever
	// having a provider asset. There is nothing to reconcile it against.
	StatusNeedsUpload Status = "needs_upload"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusReady, StatusError, StatusCancelled, StatusNeedsUpload:
		return true
	default:
		return false
	}
}

// PlaceholderPrefix is the canonical sentinel prefix for playback identifiers
// that were inserted before the real value was known.
const PlaceholderPrefix = "placeholder-"

// legacyPlaceholder is an older sentinel pattern still present in historical rows.
// It is detected on read but never written.
const legacyPlaceholder = "sample-playback-id"

// IsPlaceholderPlaybackID reports whether id is a sentinel value rather than a
// provider-issued playback identifier. Empty means absent, not placeholder.
func IsPlaceholderPlaybackID(id string) bool {
	if id == "" {
		return false
	}
	return strings.HasPrefix(id, PlaceholderPrefix) || strings.Contains(id, legacyPlaceholder)
}

// AssetRecord is the canonical local representation of a video asset.
// The provider owns the transcoding pipeline; this record tracks what the
// provider has reported so far.
type AssetRecord struct {
	// ID is the stable record identifier. Once the provider asset id is known
	// the two should be equal; records where they differ are miskeyed and get
	// re-keyed by the repairer.
	ID string `gorm:"column:id;primaryKey" json:"id"`

	// Title and Description are user supplied and never touched by the engine.
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description" json:"description"`

	// Status is the lifecycle state.
	Status Status `gorm:"column:status" json:"status"`

	// ProviderUploadID is the provider's upload identifier, set at creation.
	ProviderUploadID string `gorm:"column:provider_upload_id" json:"provider_upload_id,omitempty"`

	// ProviderAssetID is set once the provider creates an asset for the upload.
	ProviderAssetID string `gorm:"column:provider_asset_id" json:"provider_asset_id,omitempty"`

	// PlaybackID is the public playback identifier. May hold a placeholder
	// sentinel; see IsPlaceholderPlaybackID.
	PlaybackID string `gorm:"column:playback_id" json:"playback_id,omitempty"`

	// Duration is the media duration in seconds, populated once ready.
	Duration float64 `gorm:"column:duration" json:"duration,omitempty"`

	// AspectRatio is the display aspect ratio (e.g. "16:9"), populated once ready.
	AspectRatio string `gorm:"column:aspect_ratio" json:"aspect_ratio,omitempty"`

	// UpdatedAt doubles as the optimistic concurrency token: every write goes
	// through a compare-and-swap on this value.
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm table name.
func (AssetRecord) TableName() string {
	return "video_assets"
}

// HasRealPlaybackID reports whether the record holds a trustworthy,
// provider-issued playback identifier.
func (r *AssetRecord) HasRealPlaybackID() bool {
	return r.PlaybackID != "" && !IsPlaceholderPlaybackID(r.PlaybackID)
}

// Miskeyed reports whether the record id diverges from its canonical
// provider asset id.
func (r *AssetRecord) Miskeyed() bool {
	return r.ProviderAssetID != "" && r.ID != r.ProviderAssetID
}
