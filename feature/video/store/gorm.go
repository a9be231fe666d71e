package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-manager/feature/video/models"

	"gorm.io/gorm"
)

// GormStore is the MySQL-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(ctx context.Context, id string) (*models.AssetRecord, error) {
	var rec models.AssetRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *GormStore) GetByProviderAssetID(ctx context.Context, assetID string) (*models.AssetRecord, error) {
	var rec models.AssetRecord
	err := s.db.WithContext(ctx).Where("provider_asset_id = ?", assetID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record by asset id %s: %w", assetID, err)
	}
	return &rec, nil
}

func (s *GormStore) GetByProviderUploadID(ctx context.Context, uploadID string) (*models.AssetRecord, error) {
	var rec models.AssetRecord
	err := s.db.WithContext(ctx).Where("provider_upload_id = ?", uploadID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record by upload id %s: %w", uploadID, err)
	}
	return &rec, nil
}

func (s *GormStore) ListNeedingAttention(ctx context.Context, staleness time.Duration) ([]models.AssetRecord, error) {
	cutoff := time.Now().Add(-staleness)

	var recs []models.AssetRecord
	err := s.db.WithContext(ctx).
		Where("(status IN ? AND updated_at < ?)", []models.Status{models.StatusUploading, models.StatusProcessing}, cutoff).
		Or("playback_id LIKE ?", models.PlaceholderPrefix+"%").
		Or("playback_id LIKE ?", "%sample-playback-id%").
		Or("status = ? AND (provider_asset_id IS NULL OR provider_asset_id = '')", models.StatusReady).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records needing attention: %w", err)
	}
	return recs, nil
}

func (s *GormStore) ListWithProviderAssetID(ctx context.Context) ([]models.AssetRecord, error) {
	var recs []models.AssetRecord
	err := s.db.WithContext(ctx).
		Where("provider_asset_id IS NOT NULL AND provider_asset_id <> ''").
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records with asset ids: %w", err)
	}
	return recs, nil
}

func (s *GormStore) ListMiskeyed(ctx context.Context) ([]models.AssetRecord, error) {
	var recs []models.AssetRecord
	err := s.db.WithContext(ctx).
		Where("provider_asset_id IS NOT NULL AND provider_asset_id <> '' AND id <> provider_asset_id").
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list miskeyed records: %w", err)
	}
	return recs, nil
}

func (s *GormStore) CompareAndSwap(ctx context.Context, id string, expected time.Time, rec *models.AssetRecord) (*models.AssetRecord, error) {
	now := time.Now()

	// A map keeps zero values (e.g. cleared playback ids) in the UPDATE.
	res := s.db.WithContext(ctx).Model(&models.AssetRecord{}).
		Where("id = ? AND updated_at = ?", id, expected).
		Updates(map[string]any{
			"status":             rec.Status,
			"provider_upload_id": rec.ProviderUploadID,
			"provider_asset_id":  rec.ProviderAssetID,
			"playback_id":        rec.PlaybackID,
			"duration":           rec.Duration,
			"aspect_ratio":       rec.AspectRatio,
			"updated_at":         now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update record %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		// Distinguish a lost race from a vanished record.
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.AssetRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check record %s after conflict: %w", id, err)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	updated := *rec
	updated.ID = id
	updated.UpdatedAt = now
	return &updated, nil
}

func (s *GormStore) Create(ctx context.Context, rec *models.AssetRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AssetRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	return nil
}
