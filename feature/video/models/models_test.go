package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlaceholderPlaybackID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"Empty", "", false},
		{"Real", "pb-4f2a", false},
		{"Prefix", "placeholder-4f2a", true},
		{"LegacyExact", "sample-playback-id", true},
		{"LegacySubstring", "old-sample-playback-id-1", true},
		{"PrefixElsewhere", "x-placeholder-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlaceholderPlaybackID(tt.id))
		})
	}
}

func TestAssetRecord_HasRealPlaybackID(t *testing.T) {
	assert.False(t, (&AssetRecord{}).HasRealPlaybackID())
	assert.False(t, (&AssetRecord{PlaybackID: "placeholder-1"}).HasRealPlaybackID())
	assert.True(t, (&AssetRecord{PlaybackID: "pb-1"}).HasRealPlaybackID())
}

func TestAssetRecord_Miskeyed(t *testing.T) {
	assert.False(t, (&AssetRecord{ID: "abc"}).Miskeyed())
	assert.False(t, (&AssetRecord{ID: "asset-1", ProviderAssetID: "asset-1"}).Miskeyed())
	assert.True(t, (&AssetRecord{ID: "abc", ProviderAssetID: "asset-1"}).Miskeyed())
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []Status{StatusUploading, StatusProcessing, StatusReady, StatusError, StatusCancelled, StatusNeedsUpload} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, Status("deleted").IsValid())
}
