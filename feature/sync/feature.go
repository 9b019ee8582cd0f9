package sync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the sync service into the HTTP control surface.
type Feature struct {
	cfg     Config
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the sync feature for the loader.
func NewFeature(cfg Config, service *Service, logger *zap.Logger) *Feature {
	return &Feature{cfg: cfg, service: service, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the sync routes.
func (f *Feature) Load(app fiber.Router) error {
	h := NewHandler(f.service, f.logger)

	group := app.Group("/api/sync")
	group.Post("/start", h.Start)
	group.Post("/stop", h.Stop)
	group.Get("/status", h.Status)
	group.Post("/item/:sku", h.SyncItem)

	return nil
}
