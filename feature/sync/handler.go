package sync

import (
	"context"
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the sync control endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates the HTTP handler for the sync feature.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// Start launches periodic syncing. The scheduler outlives the request, so
// it runs on a background context rather than the request's.
func (h *Handler) Start(c *fiber.Ctx) error {
	if err := h.service.Start(context.Background()); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Info("periodic sync started")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "started"})
}

// Stop halts periodic syncing.
func (h *Handler) Stop(c *fiber.Ctx) error {
	h.service.Stop()
	logger.WithRayID(h.logger, c).Info("periodic sync stopped")
	return c.JSON(fiber.Map{"status": "stopped"})
}

// Status reports scheduler and per-job state.
func (h *Handler) Status(c *fiber.Ctx) error {
	running, jobs := h.service.Status()
	return c.JSON(fiber.Map{
		"running": running,
		"jobs":    jobs,
	})
}

// SyncItem reconciles a single item by SKU.
func (h *Handler) SyncItem(c *fiber.Ctx) error {
	sku := c.Params("sku")
	result, err := h.service.SyncItem(c.Context(), sku)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.logger, c).Error("single item sync failed",
			zap.String("sku", sku), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
