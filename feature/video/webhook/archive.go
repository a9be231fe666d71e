package webhook

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"media-manager/core/storage"
	"media-manager/feature/video/state"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes verified raw webhook payloads to object storage for audit
// and replay. Archiving is best-effort: a failed write is logged, never
// surfaced, so the archive can never fail an ingest.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates a new webhook payload archiver.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// Archive stores the raw payload under a date-partitioned object key.
func (a *Archiver) Archive(ctx context.Context, ev *state.Event, rawBody []byte) {
	objectName := fmt.Sprintf("webhooks/%s/%s-%s.json",
		time.Now().UTC().Format("2006-01-02"), ev.Type, uuid.NewString())

	_, err := a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(rawBody), int64(len(rawBody)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		a.logger.Warn("Failed to archive webhook payload",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}
