package store

import (
	"context"
	"testing"
	"time"

	"media-manager/feature/video/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func recordColumns() []string {
	return []string{"id", "title", "description", "status", "provider_upload_id", "provider_asset_id", "playback_id", "duration", "aspect_ratio", "updated_at"}
}

func TestGormStore_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	now := time.Now()
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("asset-1", "Intro", "", "ready", "up-1", "asset-1", "pb-1", 120.0, "16:9", now)

	mock.ExpectQuery("SELECT \\* FROM `video_assets` WHERE id = \\?").
		WithArgs("asset-1", 1).
		WillReturnRows(rows)

	rec, err := s.GetByID(context.Background(), "asset-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-1", rec.ID)
	assert.Equal(t, models.StatusReady, rec.Status)
	assert.Equal(t, "pb-1", rec.PlaybackID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectQuery("SELECT \\* FROM `video_assets` WHERE id = \\?").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows(recordColumns()))

	_, err := s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_GetByProviderUploadID(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	now := time.Now()
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("u1", "Clip", "", "uploading", "up-1", "", "", 0.0, "", now)

	mock.ExpectQuery("SELECT \\* FROM `video_assets` WHERE provider_upload_id = \\?").
		WithArgs("up-1", 1).
		WillReturnRows(rows)

	rec, err := s.GetByProviderUploadID(context.Background(), "up-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.ID)
}

func TestGormStore_CompareAndSwap(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	expected := time.Now().Add(-time.Minute)
	rec := &models.AssetRecord{
		ID:              "asset-1",
		Status:          models.StatusReady,
		ProviderAssetID: "asset-1",
		PlaybackID:      "pb-1",
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `video_assets` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := s.CompareAndSwap(context.Background(), "asset-1", expected, rec)
	require.NoError(t, err)
	assert.Equal(t, "asset-1", updated.ID)
	assert.True(t, updated.UpdatedAt.After(expected))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CompareAndSwap_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `video_assets` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `video_assets` WHERE id = \\?").
		WithArgs("asset-1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := s.CompareAndSwap(context.Background(), "asset-1", time.Now(), &models.AssetRecord{ID: "asset-1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormStore_CompareAndSwap_Gone(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `video_assets` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `video_assets` WHERE id = \\?").
		WithArgs("asset-1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	_, err := s.CompareAndSwap(context.Background(), "asset-1", time.Now(), &models.AssetRecord{ID: "asset-1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_CreateAndDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `video_assets`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.Create(context.Background(), &models.AssetRecord{ID: "asset-1", Status: models.StatusProcessing})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `video_assets` WHERE id = \\?").
		WithArgs("old-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = s.Delete(context.Background(), "old-id")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListMiskeyed(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	now := time.Now()
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("abc", "Talk", "", "ready", "", "asset-1", "pb-1", 60.0, "16:9", now)

	mock.ExpectQuery("SELECT \\* FROM `video_assets` WHERE provider_asset_id IS NOT NULL AND provider_asset_id <> '' AND id <> provider_asset_id").
		WillReturnRows(rows)

	recs, err := s.ListMiskeyed(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Miskeyed())
}
