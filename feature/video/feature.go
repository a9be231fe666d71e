package video

import (
	"media-manager/core/provider"
	"media-manager/feature/video/reconcile"
	"media-manager/feature/video/store"
	"media-manager/feature/video/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the video reconciliation feature. archiver may be nil
// when no event archive bucket is configured.
func NewFeature(db *gorm.DB, client provider.Client, verifier *webhook.Verifier, archiver *webhook.Archiver, logger *zap.Logger, opts reconcile.Options) *Feature {
	svc := NewService(store.NewGormStore(db), client, verifier, archiver, logger, opts)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "video"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for command-line entry points.
func (f *Feature) Service() *Service {
	return f.service
}
