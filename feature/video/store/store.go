package store

import (
	"context"
	"errors"
	"time"

	"media-manager/feature/video/models"
)

// ErrNotFound is returned when no record matches the lookup key.
var ErrNotFound = errors.New("asset record not found")

// ErrConflict is returned when a compare-and-swap loses the race: the record's
// version token changed between read and write. Callers re-read and recompute.
var ErrConflict = errors.New("asset record version conflict")

// Store defines the persistence interface for asset records.
//
// All mutations of an existing record go through CompareAndSwap so that
// concurrent writers on the same record converge instead of racing; there is
// no other locking.
type Store interface {
	// GetByID looks up a record by its internal id.
	GetByID(ctx context.Context, id string) (*models.AssetRecord, error)

	// GetByProviderAssetID looks up a record by the provider's asset id.
	GetByProviderAssetID(ctx context.Context, assetID string) (*models.AssetRecord, error)

	// GetByProviderUploadID looks up a record by the provider's upload id.
	GetByProviderUploadID(ctx context.Context, uploadID string) (*models.AssetRecord, error)

	// ListNeedingAttention returns records the sweep must look at: records
	// stuck in uploading/processing for longer than staleness, records with a
	// placeholder playback id, and ready records with no provider asset id.
	ListNeedingAttention(ctx context.Context, staleness time.Duration) ([]models.AssetRecord, error)

	// ListWithProviderAssetID returns every record with a provider asset id
	// set, for orphan detection during a full sweep.
	ListWithProviderAssetID(ctx context.Context) ([]models.AssetRecord, error)

	// ListMiskeyed returns records whose id differs from their provider asset id.
	ListMiskeyed(ctx context.Context) ([]models.AssetRecord, error)

	// CompareAndSwap persists rec under the given id if the stored version
	// token still equals expected. On success the returned record carries the
	// refreshed token. Returns ErrConflict if the token moved, ErrNotFound if
	// the record is gone.
	CompareAndSwap(ctx context.Context, id string, expected time.Time, rec *models.AssetRecord) (*models.AssetRecord, error)

	// Create inserts a new record.
	Create(ctx context.Context, rec *models.AssetRecord) error

	// Delete removes a record by id. Only used as the second half of a re-key.
	Delete(ctx context.Context, id string) error
}
