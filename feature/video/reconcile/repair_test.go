package reconcile

import (
	"context"
	"testing"
	"time"

	"media-manager/feature/video/models"
	"media-manager/feature/video/store"
	storemocks "media-manager/feature/video/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepairer_RekeysMiskeyedRecord(t *testing.T) {
	st := new(storemocks.Store)
	r := NewRepairer(st, zap.NewNop())

	miskeyed := models.AssetRecord{
		ID:              "local-uuid",
		Status:          models.StatusReady,
		ProviderAssetID: "asset-1",
		PlaybackID:      "pb-1",
		UpdatedAt:       time.Now(),
	}

	st.On("ListMiskeyed", mock.Anything).Return([]models.AssetRecord{miskeyed}, nil)
	st.On("Create", mock.Anything, mock.MatchedBy(func(rec *models.AssetRecord) bool {
		// The copy keeps everything except the key and the version token.
		return rec.ID == "asset-1" && rec.PlaybackID == "pb-1" &&
			rec.Status == models.StatusReady && rec.UpdatedAt.IsZero()
	})).Return(nil)
	st.On("Delete", mock.Anything, "local-uuid").Return(nil)

	report, err := r.RepairMiskeyed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalMiskeyed)
	assert.Equal(t, 1, report.Repaired)
	assert.Equal(t, 0, report.Failed)
	st.AssertExpectations(t)
}

func TestRepairer_ResumesAfterCrashBetweenSteps(t *testing.T) {
	st := new(storemocks.Store)
	r := NewRepairer(st, zap.NewNop())

	miskeyed := models.AssetRecord{ID: "local-uuid", Status: models.StatusReady, ProviderAssetID: "asset-1"}

	st.On("ListMiskeyed", mock.Anything).Return([]models.AssetRecord{miskeyed}, nil)
	// A previous run created the re-keyed row and crashed before the delete.
	st.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	st.On("GetByID", mock.Anything, "asset-1").Return(&models.AssetRecord{ID: "asset-1"}, nil)
	st.On("Delete", mock.Anything, "local-uuid").Return(nil)

	report, err := r.RepairMiskeyed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Repaired)
	st.AssertExpectations(t)
}

func TestRepairer_CreateFailureKeepsOldRecord(t *testing.T) {
	st := new(storemocks.Store)
	r := NewRepairer(st, zap.NewNop())

	miskeyed := models.AssetRecord{ID: "local-uuid", Status: models.StatusReady, ProviderAssetID: "asset-1"}

	st.On("ListMiskeyed", mock.Anything).Return([]models.AssetRecord{miskeyed}, nil)
	st.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	st.On("GetByID", mock.Anything, "asset-1").Return(nil, store.ErrNotFound)

	report, err := r.RepairMiskeyed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, report.Errors, 1)
	st.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRepairer_SkipsWellKeyedRecords(t *testing.T) {
	st := new(storemocks.Store)
	r := NewRepairer(st, zap.NewNop())

	fine := models.AssetRecord{ID: "asset-1", Status: models.StatusReady, ProviderAssetID: "asset-1"}
	st.On("ListMiskeyed", mock.Anything).Return([]models.AssetRecord{fine}, nil)

	report, err := r.RepairMiskeyed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	st.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
