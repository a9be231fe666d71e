package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-manager/core/config"
	"media-manager/core/database"
	"media-manager/core/loader"
	"media-manager/core/logger"
	"media-manager/core/middleware/auth"
	"media-manager/core/middleware/rayid"
	"media-manager/core/provider"
	"media-manager/core/storage"
	"media-manager/feature/video"
	"media-manager/feature/video/models"
	"media-manager/feature/video/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "media-manager/docs/swagger"
)

// @title Media Manager API
// @version 1.0
// @description API for reconciling video assets with the transcoding provider.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the media manager server",
	Long:  `Starts the HTTP server, the webhook endpoint and the background sweep.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidEnvironment() {
			logg.Fatal("Invalid server environment", zap.String("environment", cfg.Server.Environment))
		}

		// 3. Connect to Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&models.AssetRecord{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Provider Client
		client, err := provider.NewClient(cfg.Provider)
		if err != nil {
			logg.Fatal("Failed to create provider client", zap.Error(err))
		}

		// Signature skipping is a development convenience only.
		skipVerify := cfg.Provider.WebhookSkipVerify && !cfg.Server.IsProduction()
		if cfg.Provider.WebhookSkipVerify && cfg.Server.IsProduction() {
			logg.Warn("Refusing to skip webhook verification in production")
		}
		verifier := webhook.NewVerifier(cfg.Provider.WebhookSecret, skipVerify)

		// 5. Initialize Event Archive (Optional)
		// The archive is best-effort; the engine runs fine without it.
		var archiver *webhook.Archiver
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage connection failed, webhook archive disabled", zap.Error(err))
		} else {
			archiver = webhook.NewArchiver(store, cfg.Storage.Bucket, logg)
			if err := archiver.EnsureBucket(context.Background()); err != nil {
				logg.Warn("Webhook archive bucket unavailable", zap.Error(err))
				archiver = nil
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		videoFeature := video.NewFeature(db, client, verifier, archiver, logg, cfg.Sweep.Options())
		mgr.Register(videoFeature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect maintenance endpoints)
		// The webhook authenticates by signature, not API key.
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/video/webhook"
			},
		}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Background Sweep
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		defer stopSweep()
		if interval := cfg.Sweep.Interval(); interval > 0 {
			go runPeriodicSweep(sweepCtx, videoFeature.Service(), interval, logg)
		} else {
			logg.Info("Periodic sweep disabled")
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopSweep()
		_ = app.Shutdown()
	},
}

// runPeriodicSweep runs a full sweep every interval until ctx is cancelled.
// Overlap with manual triggers is safe: concurrent sweeps share one pass.
func runPeriodicSweep(ctx context.Context, svc *video.Service, interval time.Duration, logg *zap.Logger) {
	logg.Info("Periodic sweep enabled", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Sweep(ctx, ""); err != nil {
				logg.Error("Periodic sweep failed", zap.Error(err))
			}
		}
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
