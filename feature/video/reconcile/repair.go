package reconcile

import (
	"context"
	"fmt"
	"time"

	"media-manager/feature/video/models"
	"media-manager/feature/video/store"

	"go.uber.org/zap"
)

// Repairer re-keys miskeyed records: records whose internal id was generated
// locally before the provider asset id was known and never updated.
type Repairer struct {
	store  store.Store
	logger *zap.Logger
}

// NewRepairer creates an identifier repairer.
func NewRepairer(st store.Store, logger *zap.Logger) *Repairer {
	return &Repairer{
		store:  st,
		logger: logger,
	}
}

// RepairMiskeyed re-keys every record whose id differs from its provider
// asset id. The copy is created under the new id before the old row is
// deleted, so a crash between the two steps leaves a detectable duplicate
// instead of losing data; re-running the repairer is idempotent.
func (r *Repairer) RepairMiskeyed(ctx context.Context) (*models.RepairReport, error) {
	start := time.Now()

	candidates, err := r.store.ListMiskeyed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list miskeyed records: %w", err)
	}

	report := &models.RepairReport{TotalMiskeyed: len(candidates)}
	for _, rec := range candidates {
		if !rec.Miskeyed() {
			report.Skipped++
			continue
		}
		if err := r.repairOne(ctx, &rec); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", rec.ID, err))
			r.logger.Warn("Record repair failed", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		report.Repaired++
	}

	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()

	r.logger.Info("Repair finished",
		zap.Int("miskeyed", report.TotalMiskeyed),
		zap.Int("repaired", report.Repaired),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (r *Repairer) repairOne(ctx context.Context, rec *models.AssetRecord) error {
	rekeyed := *rec
	rekeyed.ID = rec.ProviderAssetID
	rekeyed.UpdatedAt = time.Time{}

	// Create first, delete second. The reverse order could lose the record.
	if err := r.store.Create(ctx, &rekeyed); err != nil {
		// A previous run may have crashed after the create; if the target row
		// already exists the remaining work is just the delete.
		if _, getErr := r.store.GetByID(ctx, rekeyed.ID); getErr != nil {
			return fmt.Errorf("failed to create re-keyed record %s: %w", rekeyed.ID, err)
		}
		r.logger.Info("Re-keyed record already exists, completing earlier repair",
			zap.String("old_id", rec.ID),
			zap.String("new_id", rekeyed.ID),
		)
	}

	if err := r.store.Delete(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to delete old record %s: %w", rec.ID, err)
	}

	r.logger.Info("Re-keyed miskeyed record",
		zap.String("old_id", rec.ID),
		zap.String("new_id", rekeyed.ID),
	)
	return nil
}
