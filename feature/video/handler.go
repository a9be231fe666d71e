package video

import (
	"errors"

	"media-manager/core/logger"
	"media-manager/feature/video/store"
	"media-manager/feature/video/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignatureHeader is the provider's webhook signature header.
const SignatureHeader = "Mux-Signature"

// Handler handles HTTP requests for video reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the video routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/video")
	group.Post("/webhook", h.HandleWebhook)
	group.Post("/sweep", h.HandleSweep)
	group.Post("/sweep/:id", h.HandleSweepOne)
	group.Post("/repair", h.HandleRepair)
}

// HandleWebhook ingests a single provider event.
// @Summary Ingest Provider Webhook
// @Description Verifies and applies one transcoding provider event. Unmatched and unrecognized events are acknowledged without changes.
// @Tags video
// @Accept json
// @Produce json
// @Param Mux-Signature header string false "Signature header (t=<unix>,v1=<hex>)"
// @Success 200 {object} webhook.IngestResult "Ingest Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Failure 401 {object} map[string]string "Signature Rejected"
// @Failure 503 {object} map[string]string "Contended or Unavailable, Retry Delivery"
// @Router /video/webhook [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	// Body() is the raw signed payload; it must reach the verifier untouched.
	result, err := h.service.IngestWebhook(c.Context(), c.Body(), c.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrVerification):
			l.Warn("Webhook signature rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "signature verification failed"})
		case errors.Is(err, webhook.ErrMalformed):
			l.Warn("Webhook body rejected", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrConflict):
			// Tell the provider to redeliver rather than dropping the event.
			l.Warn("Webhook ingest contended", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "record contended, retry delivery"})
		default:
			l.Error("Webhook ingest failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "ingest failed, retry delivery"})
		}
	}

	return c.JSON(result)
}

// HandleSweep reconciles all records against the provider.
// @Summary Sweep All Records
// @Description Compares every record needing attention against the provider's asset list and repairs drift. Concurrent triggers share a single pass.
// @Tags video
// @Accept json
// @Produce json
// @Success 200 {object} models.SweepReport "Sweep Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /video/sweep [post]
func (h *Handler) HandleSweep(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sweep triggered")

	report, err := h.service.Sweep(c.Context(), "")
	if err != nil {
		l.Error("Sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleSweepOne reconciles a single record against the provider.
// @Summary Sweep One Record
// @Description Reconciles a single record by id against the provider.
// @Tags video
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} models.SweepReport "Sweep Report"
// @Failure 404 {object} map[string]string "Record Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /video/sweep/{id} [post]
func (h *Handler) HandleSweepOne(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Sweep(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
		}
		l.Error("Record sweep failed", zap.String("record_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleRepair re-keys miskeyed records.
// @Summary Repair Miskeyed Records
// @Description Re-keys records whose internal id diverged from their provider asset id. Safe to re-run.
// @Tags video
// @Accept json
// @Produce json
// @Success 200 {object} models.RepairReport "Repair Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /video/repair [post]
func (h *Handler) HandleRepair(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Repair triggered")

	report, err := h.service.RepairMiskeyed(c.Context())
	if err != nil {
		l.Error("Repair failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
