package mocks

import (
	"context"

	"media-manager/core/provider"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of provider.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetAsset(ctx context.Context, assetID string) (*provider.Asset, error) {
	args := m.Called(ctx, assetID)
	if asset, ok := args.Get(0).(*provider.Asset); ok {
		return asset, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListAssets(ctx context.Context) ([]provider.Asset, error) {
	args := m.Called(ctx)
	if assets, ok := args.Get(0).([]provider.Asset); ok {
		return assets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreatePlaybackID(ctx context.Context, assetID string) (*provider.PlaybackID, error) {
	args := m.Called(ctx, assetID)
	if pb, ok := args.Get(0).(*provider.PlaybackID); ok {
		return pb, args.Error(1)
	}
	return nil, args.Error(1)
}
