package sync

import (
	"context"
	"fmt"
	"math"
	stdsync "sync"
	"time"

	"catalog-sync/core/cache"
	"catalog-sync/core/utils"
	"catalog-sync/feature/remote"
	"catalog-sync/feature/source"

	"go.uber.org/zap"
)

// SourceReader supplies catalog items and categories to reconcile.
type SourceReader interface {
	ListActiveItems(ctx context.Context) ([]source.CatalogItem, error)
	ListCategories(ctx context.Context) ([]source.CategoryNode, error)
	GetItem(ctx context.Context, sku string) (*source.CatalogItem, error)
}

// RemoteClient is the remote commerce API surface the engine needs.
type RemoteClient interface {
	GetBySKU(ctx context.Context, sku string) (*remote.Item, error)
	Create(ctx context.Context, payload remote.ProductPayload) (*remote.Item, error)
	Update(ctx context.Context, id int64, payload remote.ProductPayload) (*remote.Item, error)
	BatchUpdate(ctx context.Context, items []remote.BatchItem) error
	ListCategories(ctx context.Context) ([]remote.Category, error)
	CreateCategory(ctx context.Context, name string, parent int64) (*remote.Category, error)
}

// ImagePublisher uploads a local image and returns its public URL.
type ImagePublisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
}

// Engine reconciles the source catalog against the remote store. Failures
// are isolated per item: one bad item never aborts a pass.
type Engine struct {
	cfg    Config
	remote RemoteClient
	images ImagePublisher
	cache  *cache.HybridCache
	rates  *Rates
	logger *zap.Logger

	catMu       stdsync.Mutex
	catIndex    map[catKey]int64
	catLoadedAt time.Time
}

// NewEngine creates a reconciliation engine. The image publisher may be nil,
// in which case product images are skipped.
func NewEngine(cfg Config, rc RemoteClient, imgs ImagePublisher, hc *cache.HybridCache, rates *Rates, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		remote: rc,
		images: imgs,
		cache:  hc,
		rates:  rates,
		logger: logger,
	}
}

// ReconcileProducts pushes every item to the remote store, creating items
// whose SKU is unknown and updating the rest.
func (e *Engine) ReconcileProducts(ctx context.Context, items []source.CatalogItem) []Result {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, e.reconcileItem(ctx, item))
	}
	e.logSummary("products", results)
	return results
}

func (e *Engine) reconcileItem(ctx context.Context, item source.CatalogItem) Result {
	existing, err := e.remote.GetBySKU(ctx, item.SKU)
	if err != nil {
		return failure(item.SKU, fmt.Errorf("lookup failed: %w", err))
	}

	payload := e.buildPayload(ctx, item)

	if existing == nil {
		if _, err := e.remote.Create(ctx, payload); err != nil {
			return failure(item.SKU, fmt.Errorf("create failed: %w", err))
		}
		return Result{SKU: item.SKU, Success: true, Message: "created"}
	}

	if _, err := e.remote.Update(ctx, existing.ID, payload); err != nil {
		return failure(item.SKU, fmt.Errorf("update failed: %w", err))
	}
	return Result{SKU: item.SKU, Success: true, Message: "updated"}
}

// buildPayload maps a catalog item onto the remote wire format. Category
// resolution and image publishing fail open: the product still syncs, just
// without the category or image.
func (e *Engine) buildPayload(ctx context.Context, item source.CatalogItem) remote.ProductPayload {
	status := "private"
	if item.Active && item.Visible {
		status = "publish"
	}

	price := e.rates.ConvertPrice(ctx, item.UnitPrice, item.Currency, e.cfg.BaseCurrency)

	payload := remote.ProductPayload{
		Name:          item.Name,
		SKU:           item.SKU,
		Description:   item.Description,
		RegularPrice:  utils.FormatPrice(price),
		ManageStock:   true,
		StockQuantity: int(math.Round(item.TotalStock())),
		Status:        status,
	}

	if len(item.CategoryPath) > 0 {
		catID, err := e.resolveCategory(ctx, item.CategoryPath)
		if err != nil {
			e.logger.Warn("category resolution failed, syncing without category",
				zap.String("sku", item.SKU), zap.Error(err))
		} else if catID != 0 {
			payload.Categories = []remote.CategoryRef{{ID: catID}}
		}
	}

	if e.images != nil {
		for _, path := range item.Images {
			url, err := e.images.Publish(ctx, path)
			if err != nil {
				e.logger.Warn("image publish failed, skipping image",
					zap.String("sku", item.SKU), zap.String("path", path), zap.Error(err))
				continue
			}
			payload.Images = append(payload.Images, remote.ImageRef{Src: url})
		}
	}

	return payload
}

// ReconcileStockPrices refreshes stock and price for items that already
// exist remotely, batching updates. Unknown SKUs are reported and skipped,
// never created.
func (e *Engine) ReconcileStockPrices(ctx context.Context, items []source.CatalogItem) []Result {
	batchSize := e.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	results := make([]Result, 0, len(items))
	batch := make([]remote.BatchItem, 0, batchSize)
	pending := make([]string, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		err := e.remote.BatchUpdate(ctx, batch)
		for _, sku := range pending {
			if err != nil {
				results = append(results, failure(sku, fmt.Errorf("batch update failed: %w", err)))
			} else {
				results = append(results, Result{SKU: sku, Success: true, Message: "updated"})
			}
		}
		batch = batch[:0]
		pending = pending[:0]
	}

	for _, item := range items {
		existing, err := e.remote.GetBySKU(ctx, item.SKU)
		if err != nil {
			results = append(results, failure(item.SKU, fmt.Errorf("lookup failed: %w", err)))
			continue
		}
		if existing == nil {
			results = append(results, Result{SKU: item.SKU, Message: "item not found in remote catalog"})
			continue
		}

		price := e.rates.ConvertPrice(ctx, item.UnitPrice, item.Currency, e.cfg.BaseCurrency)
		batch = append(batch, remote.BatchItem{
			ID:            existing.ID,
			RegularPrice:  utils.FormatPrice(price),
			ManageStock:   true,
			StockQuantity: int(math.Round(item.TotalStock())),
		})
		pending = append(pending, item.SKU)

		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	e.logSummary("stock_prices", results)
	return results
}

// ReconcileCategories walks the source category tree root first and ensures
// every path exists remotely.
func (e *Engine) ReconcileCategories(ctx context.Context, nodes []source.CategoryNode) []Result {
	var results []Result

	var walk func(prefix []source.PathLevel, node source.CategoryNode)
	walk = func(prefix []source.PathLevel, node source.CategoryNode) {
		path := append(append([]source.PathLevel{}, prefix...), source.PathLevel{Code: node.Code, Name: node.Name})
		key := mappingKey(path)
		if _, err := e.resolveCategory(ctx, path); err != nil {
			results = append(results, failure(key, err))
		} else {
			results = append(results, Result{SKU: key, Success: true})
		}
		for _, child := range node.Children {
			walk(path, child)
		}
	}
	for _, node := range nodes {
		walk(nil, node)
	}

	e.logSummary("categories", results)
	return results
}

func (e *Engine) logSummary(pass string, results []Result) {
	var succeeded, failed int
	for _, r := range results {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	e.logger.Info("reconciliation pass finished",
		zap.String("pass", pass),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed))
}

func failure(sku string, err error) Result {
	return Result{SKU: sku, Message: err.Error()}
}
