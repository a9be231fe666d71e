// Package provider wraps the transcoding provider's REST API.
//
// It exposes the narrow Client interface the reconciliation engine consumes:
// retrieve a single asset, list all assets (pagination handled internally),
// and create a public playback identifier. The interface makes provider
// interactions easy to mock for unit testing (see core/provider/mocks).
//
// # Error semantics
//
// GetAsset returns ErrAssetNotFound when the provider no longer lists the
// asset. The sweep reconciler relies on this to detect orphans; any other
// error is transient and retried on the next sweep.
//
// # Usage
//
//	client, err := provider.NewClient(cfg.Provider)
//	asset, err := client.GetAsset(ctx, "asset-1")
package provider
