package mocks

import (
	"context"
	"time"

	"media-manager/feature/video/models"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of store.Store
type Store struct {
	mock.Mock
}

func (m *Store) GetByID(ctx context.Context, id string) (*models.AssetRecord, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*models.AssetRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GetByProviderAssetID(ctx context.Context, assetID string) (*models.AssetRecord, error) {
	args := m.Called(ctx, assetID)
	if rec, ok := args.Get(0).(*models.AssetRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GetByProviderUploadID(ctx context.Context, uploadID string) (*models.AssetRecord, error) {
	args := m.Called(ctx, uploadID)
	if rec, ok := args.Get(0).(*models.AssetRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListNeedingAttention(ctx context.Context, staleness time.Duration) ([]models.AssetRecord, error) {
	args := m.Called(ctx, staleness)
	if recs, ok := args.Get(0).([]models.AssetRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListWithProviderAssetID(ctx context.Context) ([]models.AssetRecord, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]models.AssetRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListMiskeyed(ctx context.Context) ([]models.AssetRecord, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]models.AssetRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CompareAndSwap(ctx context.Context, id string, expected time.Time, rec *models.AssetRecord) (*models.AssetRecord, error) {
	args := m.Called(ctx, id, expected, rec)
	if updated, ok := args.Get(0).(*models.AssetRecord); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Create(ctx context.Context, rec *models.AssetRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
