package cmd

import (
	"context"
	"fmt"

	"media-manager/core/config"
	"media-manager/core/database"
	"media-manager/core/logger"
	"media-manager/core/provider"
	"media-manager/feature/video/models"
	"media-manager/feature/video/reconcile"
	"media-manager/feature/video/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepRecordID string

// sweepCmd runs a one-off reconciliation sweep against the provider.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Reconcile asset records against the provider",
	Long: `Sweep compares local asset records against the provider's asset list
and repairs drift: stuck records catch up, orphans are marked errored, and
ready records without a real playback id get one.

Examples:
  # Sweep every record needing attention
  media-manager sweep

  # Sweep a single record
  media-manager sweep --id 6a9f0c7e`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepRecordID, "id", "", "Sweep a single record id instead of all records")
	RootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := provider.NewClient(cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to create provider client: %w", err)
	}

	st := store.NewGormStore(db)
	ensurer := reconcile.NewEnsurer(st, client, l)
	sweeper := reconcile.NewSweeper(st, client, ensurer, l, cfg.Sweep.Options())

	scope := reconcile.ScopeAll
	if sweepRecordID != "" {
		scope = sweepRecordID
	}

	l.Info("Starting sweep", zap.String("scope", scope))
	report, err := sweeper.Sweep(ctx, scope)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	printSweepReport(l, report)
	return nil
}

// printSweepReport prints a formatted sweep report using logger.
func printSweepReport(l *zap.Logger, report *models.SweepReport) {
	l.Info("Sweep report",
		zap.String("scope", report.Scope),
		zap.Int("total_checked", report.TotalChecked),
		zap.Int("fixed", report.Fixed),
		zap.Int("orphaned", report.Orphaned),
		zap.Int("consistent", report.Consistent),
		zap.Int("needs_upload", report.NeedsUpload),
		zap.Int("failed", report.Failed),
		zap.String("execution_time", report.ExecutionTime),
	)

	for _, msg := range report.Errors {
		l.Warn("Sweep error", zap.String("detail", msg))
	}
}
