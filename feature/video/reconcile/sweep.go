package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"media-manager/core/provider"
	"media-manager/feature/video/models"
	"media-manager/feature/video/state"
	"media-manager/feature/video/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ScopeAll sweeps every record that needs attention plus every record with a
// provider asset id (for orphan detection).
const ScopeAll = "all"

// Per-record outcome categories aggregated into the SweepReport.
const (
	outcomeFixed       = "fixed"
	outcomeOrphaned    = "orphaned"
	outcomeConsistent  = "consistent"
	outcomeNeedsUpload = "needs_upload"
)

// Options tunes sweep behavior.
type Options struct {
	// Staleness is how long a record may sit in uploading/processing before
	// the sweep considers it stuck.
	Staleness time.Duration
	// Concurrency bounds the number of records reconciled in parallel.
	Concurrency int
	// CallTimeout bounds each provider call made on behalf of a single record.
	CallTimeout time.Duration
}

// Sweeper compares local records against the provider's bulk state and drives
// the state machine for every mismatch. Failures are isolated per record: one
// bad record never fails the sweep.
type Sweeper struct {
	store    store.Store
	provider provider.Client
	ensurer  *Ensurer
	logger   *zap.Logger
	opts     Options

	// sf collapses concurrent full-sweep triggers into one run.
	sf singleflight.Group
}

// NewSweeper creates a sweep reconciler.
func NewSweeper(st store.Store, client provider.Client, ensurer *Ensurer, logger *zap.Logger, opts Options) *Sweeper {
	if opts.Staleness <= 0 {
		opts.Staleness = 10 * time.Minute
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}
	return &Sweeper{
		store:    st,
		provider: client,
		ensurer:  ensurer,
		logger:   logger,
		opts:     opts,
	}
}

// Sweep reconciles either all records (scope empty or "all") or a single
// record id against the provider.
func (s *Sweeper) Sweep(ctx context.Context, scope string) (*models.SweepReport, error) {
	if scope == "" || scope == ScopeAll {
		// Overlapping timer and manual triggers share one pass.
		v, err, _ := s.sf.Do(ScopeAll, func() (any, error) {
			return s.sweepAll(ctx)
		})
		if err != nil {
			return nil, err
		}
		return v.(*models.SweepReport), nil
	}
	return s.sweepOne(ctx, scope)
}

func (s *Sweeper) sweepAll(ctx context.Context) (*models.SweepReport, error) {
	start := time.Now()

	// One bulk fetch per sweep; per-record provider round-trips would not scale.
	assets, err := s.provider.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider assets: %w", err)
	}
	byAssetID := make(map[string]provider.Asset, len(assets))
	byUploadID := make(map[string]provider.Asset)
	for _, asset := range assets {
		byAssetID[asset.ID] = asset
		if asset.UploadID != "" {
			byUploadID[asset.UploadID] = asset
		}
	}

	records, err := s.collectRecords(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.SweepReport{Scope: ScopeAll}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			// Writes to the same record are serialized by processing each
			// record in exactly one goroutine; the CAS guards against
			// concurrent webhook deliveries.
			asset := s.lookupAsset(&rec, byAssetID, byUploadID)
			outcome, err := s.reconcileRecord(ctx, &rec, asset)

			mu.Lock()
			defer mu.Unlock()
			report.TotalChecked++
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", rec.ID, err))
				s.logger.Warn("Record sweep failed", zap.String("record_id", rec.ID), zap.Error(err))
				return nil
			}
			s.countOutcome(report, outcome)
			return nil
		})
	}
	_ = g.Wait()

	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()

	s.logger.Info("Sweep finished",
		zap.Int("checked", report.TotalChecked),
		zap.Int("fixed", report.Fixed),
		zap.Int("orphaned", report.Orphaned),
		zap.Int("needs_upload", report.NeedsUpload),
		zap.Int("failed", report.Failed),
		zap.String("execution_time", report.ExecutionTime),
	)
	return report, nil
}

func (s *Sweeper) sweepOne(ctx context.Context, id string) (*models.SweepReport, error) {
	start := time.Now()

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var asset *provider.Asset
	if rec.ProviderAssetID != "" {
		callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
		asset, err = s.provider.GetAsset(callCtx, rec.ProviderAssetID)
		cancel()
		if err != nil && !errors.Is(err, provider.ErrAssetNotFound) {
			return nil, fmt.Errorf("failed to fetch asset %s: %w", rec.ProviderAssetID, err)
		}
	}

	report := &models.SweepReport{Scope: id, TotalChecked: 1}
	outcome, err := s.reconcileRecord(ctx, rec, asset)
	if err != nil {
		report.Failed = 1
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", id, err))
	} else {
		s.countOutcome(report, outcome)
	}

	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()
	return report, nil
}

// collectRecords merges the attention list with every asset-bearing record,
// de-duplicated by id.
func (s *Sweeper) collectRecords(ctx context.Context) ([]models.AssetRecord, error) {
	attention, err := s.store.ListNeedingAttention(ctx, s.opts.Staleness)
	if err != nil {
		return nil, fmt.Errorf("failed to list records needing attention: %w", err)
	}
	withAssets, err := s.store.ListWithProviderAssetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records with asset ids: %w", err)
	}

	seen := make(map[string]struct{}, len(attention)+len(withAssets))
	merged := make([]models.AssetRecord, 0, len(attention)+len(withAssets))
	for _, rec := range append(attention, withAssets...) {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		merged = append(merged, rec)
	}
	return merged, nil
}

// lookupAsset resolves the provider asset for a record, matching by asset id
// first and upload id second (a stuck uploading record may have an asset the
// creation event for which was lost).
func (s *Sweeper) lookupAsset(rec *models.AssetRecord, byAssetID, byUploadID map[string]provider.Asset) *provider.Asset {
	if rec.ProviderAssetID != "" {
		if asset, ok := byAssetID[rec.ProviderAssetID]; ok {
			return &asset
		}
		return nil
	}
	if rec.ProviderUploadID != "" {
		if asset, ok := byUploadID[rec.ProviderUploadID]; ok {
			return &asset
		}
	}
	return nil
}

// reconcileRecord drives a single record toward the provider's observation.
// asset == nil means the provider does not know the record's asset.
func (s *Sweeper) reconcileRecord(ctx context.Context, rec *models.AssetRecord, asset *provider.Asset) (string, error) {
	// Ready with no asset id at all: nothing to reconcile against. Demote and
	// clear any placeholder so the record re-enters the upload flow.
	if rec.ProviderAssetID == "" && asset == nil {
		if rec.Status == models.StatusReady {
			next := *rec
			next.Status = models.StatusNeedsUpload
			next.PlaybackID = ""
			if err := s.persist(ctx, rec, &next); err != nil {
				return "", err
			}
			return outcomeNeedsUpload, nil
		}
		// Still waiting on the provider; nothing to do this pass.
		return outcomeConsistent, nil
	}

	// Orphan: the record claims an asset the provider no longer lists.
	if asset == nil {
		if rec.Status == models.StatusCancelled {
			return outcomeConsistent, nil
		}
		if rec.Status == models.StatusError {
			return outcomeConsistent, nil
		}
		next := *rec
		next.Status = models.StatusError
		if err := s.persist(ctx, rec, &next); err != nil {
			return "", err
		}
		s.logger.Warn("Orphaned record marked errored",
			zap.String("record_id", rec.ID),
			zap.String("provider_asset_id", rec.ProviderAssetID),
		)
		return outcomeOrphaned, nil
	}

	// Drift repair reuses the webhook transition path via a synthetic event.
	tr := state.Apply(rec, syntheticEvent(asset))
	outcome := outcomeConsistent
	current := rec
	if tr.Outcome == state.OutcomeApplied {
		if err := s.persist(ctx, rec, tr.Record); err != nil {
			return "", err
		}
		current = tr.Record
		outcome = outcomeFixed
	}

	if asset.Status == provider.AssetReady {
		ensureCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
		ensured, err := s.ensurer.Ensure(ensureCtx, current)
		cancel()
		if err != nil {
			return "", err
		}
		if ensured != EnsureNoOp {
			outcome = outcomeFixed
		}
	}
	return outcome, nil
}

// persist writes next over rec with the CAS discipline, re-reading and
// recomputing nothing: a conflict during a sweep means a webhook got there
// first, which the next pass will verify.
func (s *Sweeper) persist(ctx context.Context, rec, next *models.AssetRecord) error {
	_, err := s.store.CompareAndSwap(ctx, rec.ID, rec.UpdatedAt, next)
	if errors.Is(err, store.ErrConflict) {
		s.logger.Debug("Sweep write lost to a concurrent writer", zap.String("record_id", rec.ID))
		return nil
	}
	return err
}

func (s *Sweeper) countOutcome(report *models.SweepReport, outcome string) {
	switch outcome {
	case outcomeFixed:
		report.Fixed++
	case outcomeOrphaned:
		report.Orphaned++
	case outcomeNeedsUpload:
		report.NeedsUpload++
	default:
		report.Consistent++
	}
}

// syntheticEvent converts a bulk provider observation into the event the
// webhook path would have delivered for the same state.
func syntheticEvent(asset *provider.Asset) *state.Event {
	ev := &state.Event{
		ProviderAssetID:  asset.ID,
		ProviderUploadID: asset.UploadID,
		PassthroughID:    asset.Passthrough,
		Payload: state.Payload{
			Status:      string(asset.Status),
			Duration:    asset.Duration,
			AspectRatio: asset.AspectRatio,
		},
	}
	for _, pb := range asset.PlaybackIDs {
		ev.Payload.PlaybackIDs = append(ev.Payload.PlaybackIDs, pb.ID)
	}

	switch asset.Status {
	case provider.AssetReady:
		ev.Type = state.EventAssetReady
	case provider.AssetErrored:
		ev.Type = state.EventAssetErrored
	default:
		ev.Type = state.EventAssetCreated
	}
	return ev
}
