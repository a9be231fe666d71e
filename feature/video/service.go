package video

import (
	"context"

	"media-manager/core/provider"
	"media-manager/feature/video/models"
	"media-manager/feature/video/reconcile"
	"media-manager/feature/video/store"
	"media-manager/feature/video/webhook"

	"go.uber.org/zap"
)

// Service bundles the video reconciliation operations behind one entry point.
type Service struct {
	ingestor *webhook.Ingestor
	sweeper  *reconcile.Sweeper
	repairer *reconcile.Repairer
	logger   *zap.Logger
}

// NewService wires the ingestor, sweeper and repairer on top of a shared
// store and provider client. archiver may be nil when the event archive is
// not configured.
func NewService(st store.Store, client provider.Client, verifier *webhook.Verifier, archiver *webhook.Archiver, logger *zap.Logger, opts reconcile.Options) *Service {
	ensurer := reconcile.NewEnsurer(st, client, logger)
	return &Service{
		ingestor: webhook.NewIngestor(st, verifier, ensurer, archiver, logger),
		sweeper:  reconcile.NewSweeper(st, client, ensurer, logger, opts),
		repairer: reconcile.NewRepairer(st, logger),
		logger:   logger,
	}
}

// IngestWebhook processes one provider delivery.
func (s *Service) IngestWebhook(ctx context.Context, rawBody []byte, signatureHeader string) (*webhook.IngestResult, error) {
	return s.ingestor.Ingest(ctx, rawBody, signatureHeader)
}

// Sweep reconciles records against the provider. An empty scope sweeps
// everything.
func (s *Service) Sweep(ctx context.Context, scope string) (*models.SweepReport, error) {
	return s.sweeper.Sweep(ctx, scope)
}

// RepairMiskeyed re-keys records whose id diverged from their provider asset
// id.
func (s *Service) RepairMiskeyed(ctx context.Context) (*models.RepairReport, error) {
	return s.repairer.RepairMiskeyed(ctx)
}
