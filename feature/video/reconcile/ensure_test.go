package reconcile

import (
	"context"
	"testing"
	"time"

	"media-manager/core/provider"
	providermocks "media-manager/core/provider/mocks"
	"media-manager/feature/video/models"
	"media-manager/feature/video/store"
	storemocks "media-manager/feature/video/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readyRecord(playbackID string) *models.AssetRecord {
	return &models.AssetRecord{
		ID:              "v1",
		Status:          models.StatusReady,
		ProviderAssetID: "asset-1",
		PlaybackID:      playbackID,
		UpdatedAt:       time.Now(),
	}
}

func TestEnsurer_NoOpWhenRealPlaybackIDPresent(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	outcome, err := e.Ensure(context.Background(), readyRecord("pb-real"))
	require.NoError(t, err)
	assert.Equal(t, EnsureNoOp, outcome)
	client.AssertNotCalled(t, "GetAsset", mock.Anything, mock.Anything)
}

func TestEnsurer_NoOpWhenNotReady(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	rec := readyRecord("")
	rec.Status = models.StatusProcessing
	outcome, err := e.Ensure(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, EnsureNoOp, outcome)
	client.AssertNotCalled(t, "GetAsset", mock.Anything, mock.Anything)
}

func TestEnsurer_AdoptsExistingPlaybackID(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	rec := readyRecord(models.PlaceholderPrefix + "abc")
	client.On("GetAsset", mock.Anything, "asset-1").Return(&provider.Asset{
		ID:          "asset-1",
		Status:      provider.AssetReady,
		PlaybackIDs: []provider.PlaybackID{{ID: "pb-1", Policy: "public"}},
	}, nil)
	st.On("CompareAndSwap", mock.Anything, "v1", rec.UpdatedAt, mock.MatchedBy(func(next *models.AssetRecord) bool {
		return next.PlaybackID == "pb-1"
	})).Return(&models.AssetRecord{ID: "v1", PlaybackID: "pb-1"}, nil)

	outcome, err := e.Ensure(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, EnsureAdopted, outcome)
	client.AssertNotCalled(t, "CreatePlaybackID", mock.Anything, mock.Anything)
	st.AssertExpectations(t)
}

func TestEnsurer_CreatesWhenProviderHasNone(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	rec := readyRecord("")
	client.On("GetAsset", mock.Anything, "asset-1").Return(&provider.Asset{ID: "asset-1", Status: provider.AssetReady}, nil)
	client.On("CreatePlaybackID", mock.Anything, "asset-1").Return(&provider.PlaybackID{ID: "pb-new", Policy: "public"}, nil)
	st.On("CompareAndSwap", mock.Anything, "v1", rec.UpdatedAt, mock.MatchedBy(func(next *models.AssetRecord) bool {
		return next.PlaybackID == "pb-new"
	})).Return(&models.AssetRecord{ID: "v1", PlaybackID: "pb-new"}, nil)

	outcome, err := e.Ensure(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, EnsureCreated, outcome)
	st.AssertExpectations(t)
}

func TestEnsurer_BacksOffWhenRacerWins(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	rec := readyRecord("")
	client.On("GetAsset", mock.Anything, "asset-1").Return(&provider.Asset{
		ID:          "asset-1",
		Status:      provider.AssetReady,
		PlaybackIDs: []provider.PlaybackID{{ID: "pb-1", Policy: "public"}},
	}, nil)
	st.On("CompareAndSwap", mock.Anything, "v1", rec.UpdatedAt, mock.Anything).Return(nil, store.ErrConflict)
	// The concurrent writer already stored a real playback id.
	st.On("GetByID", mock.Anything, "v1").Return(readyRecord("pb-other"), nil)

	outcome, err := e.Ensure(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, EnsureNoOp, outcome)
	st.AssertNumberOfCalls(t, "CompareAndSwap", 1)
}

func TestEnsurer_ProviderFailurePropagates(t *testing.T) {
	st := new(storemocks.Store)
	client := new(providermocks.Client)
	e := NewEnsurer(st, client, zap.NewNop())

	client.On("GetAsset", mock.Anything, "asset-1").Return(nil, assert.AnError)

	_, err := e.Ensure(context.Background(), readyRecord(""))
	assert.ErrorIs(t, err, assert.AnError)
	st.AssertNotCalled(t, "CompareAndSwap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
