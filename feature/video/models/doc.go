// Package models defines the video asset record and report types.
//
// AssetRecord is the canonical local entity tracking what the transcoding
// provider has reported about a single video. Its UpdatedAt column is the
// optimistic concurrency token: every mutation goes through a compare-and-swap
// against the previously read value, which is the only concurrency control in
// the engine.
//
// The package also defines the placeholder playback id sentinel. Playback
// identifiers beginning with "placeholder-" (or containing the legacy
// "sample-playback-id" pattern) stand in for a real provider-issued value and
// are always candidates for repair.
package models
