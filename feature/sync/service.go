package sync

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/feature/source"

	"go.uber.org/zap"
)

// ErrItemNotFound is returned when a requested SKU does not exist in the
// source catalog.
var ErrItemNotFound = errors.New("item not found in source catalog")

// Service ties the engine, the source reader and the scheduler together and
// backs the HTTP control surface.
type Service struct {
	engine    *Engine
	source    SourceReader
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewService creates the sync service and its scheduler.
func NewService(cfg Config, engine *Engine, src SourceReader, logger *zap.Logger) *Service {
	s := &Service{
		engine: engine,
		source: src,
		logger: logger,
	}
	s.scheduler = NewScheduler(cfg, s.Run, logger)
	return s
}

// Run executes one reconciliation pass of the given kind. Source read
// failures abort the pass with a single failed result.
func (s *Service) Run(ctx context.Context, kind JobKind) []Result {
	switch kind {
	case JobProducts:
		items, err := s.source.ListActiveItems(ctx)
		if err != nil {
			return s.sourceFailure(kind, err)
		}
		return s.engine.ReconcileProducts(ctx, items)
	case JobStockPrices:
		items, err := s.source.ListActiveItems(ctx)
		if err != nil {
			return s.sourceFailure(kind, err)
		}
		return s.engine.ReconcileStockPrices(ctx, items)
	case JobCategories:
		nodes, err := s.source.ListCategories(ctx)
		if err != nil {
			return s.sourceFailure(kind, err)
		}
		return s.engine.ReconcileCategories(ctx, nodes)
	default:
		return []Result{{Message: fmt.Sprintf("unknown job kind %q", kind)}}
	}
}

func (s *Service) sourceFailure(kind JobKind, err error) []Result {
	s.logger.Error("failed to read source catalog",
		zap.String("kind", string(kind)), zap.Error(err))
	return []Result{{Message: fmt.Sprintf("source read failed: %v", err)}}
}

// SyncItem reconciles a single item by SKU on demand.
func (s *Service) SyncItem(ctx context.Context, sku string) (Result, error) {
	item, err := s.source.GetItem(ctx, sku)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read item %s: %w", sku, err)
	}
	if item == nil {
		return Result{}, ErrItemNotFound
	}
	results := s.engine.ReconcileProducts(ctx, []source.CatalogItem{*item})
	return results[0], nil
}

// Start launches periodic syncing.
func (s *Service) Start(ctx context.Context) error {
	return s.scheduler.Start(ctx)
}

// Stop halts periodic syncing without interrupting an in-flight pass.
func (s *Service) Stop() {
	s.scheduler.Stop()
}

// Status reports whether the scheduler runs and the per-job state.
func (s *Service) Status() (bool, []SyncRun) {
	return s.scheduler.Running(), s.scheduler.Status()
}
