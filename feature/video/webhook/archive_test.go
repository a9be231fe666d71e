package webhook

import (
	"context"
	"strings"
	"testing"

	"media-manager/core/storage/mocks"
	"media-manager/feature/video/state"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArchiver_EnsureBucket(t *testing.T) {
	t.Run("Bucket Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "media-webhooks").Return(true, nil)

		a := NewArchiver(client, "media-webhooks", zap.NewNop())
		require.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates Missing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "media-webhooks").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "media-webhooks", mock.Anything).Return(nil)

		a := NewArchiver(client, "media-webhooks", zap.NewNop())
		require.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}

func TestArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	body := []byte(`{"type": "asset.ready", "data": {"id": "asset-1"}}`)

	client.On("PutObject", mock.Anything, "media-webhooks",
		mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "webhooks/") && strings.Contains(name, "asset.ready")
		}),
		mock.Anything, int64(len(body)),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "application/json"
		}),
	).Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "media-webhooks", zap.NewNop())
	a.Archive(context.Background(), &state.Event{Type: state.EventAssetReady}, body)
	client.AssertExpectations(t)
}

func TestArchiver_PutFailureIsSwallowed(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	a := NewArchiver(client, "media-webhooks", zap.NewNop())
	// Must not panic or surface the error.
	a.Archive(context.Background(), &state.Event{Type: state.EventAssetErrored}, []byte("{}"))
	client.AssertExpectations(t)
}
