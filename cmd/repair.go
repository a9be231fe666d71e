package cmd

import (
	"context"
	"fmt"

	"media-manager/core/config"
	"media-manager/core/database"
	"media-manager/core/logger"
	"media-manager/feature/video/reconcile"
	"media-manager/feature/video/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// repairCmd re-keys records whose id diverged from their provider asset id.
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Re-key miskeyed asset records",
	Long: `Repair finds records whose internal id differs from their provider
asset id (typically created before the asset id was known) and re-keys them
under the provider asset id. The operation is idempotent and safe to re-run
after a crash.`,
	RunE: runRepair,
}

func init() {
	RootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
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

	repairer := reconcile.NewRepairer(store.NewGormStore(db), l)

	l.Info("Starting repair")
	report, err := repairer.RepairMiskeyed(ctx)
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	l.Info("Repair report",
		zap.Int("total_miskeyed", report.TotalMiskeyed),
		zap.Int("repaired", report.Repaired),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.String("execution_time", report.ExecutionTime),
	)
	for _, msg := range report.Errors {
		l.Warn("Repair error", zap.String("detail", msg))
	}
	return nil
}
