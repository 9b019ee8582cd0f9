package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/cache"
	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/core/transport"

	"catalog-sync/feature/images"
	"catalog-sync/feature/remote"
	"catalog-sync/feature/source"
	"catalog-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncSKU string

// syncCmd runs a single reconciliation pass and exits.
var syncCmd = &cobra.Command{
	Use:   "sync [products|categories|stock-prices]",
	Short: "Run one reconciliation pass and exit",
	Long: `Runs a single reconciliation pass against the remote store.

Examples:
  # Full product pass
  catalog-sync sync products

  # Ensure the category tree exists remotely
  catalog-sync sync categories

  # Refresh stock and prices of existing products
  catalog-sync sync stock-prices

  # Sync one item by SKU
  catalog-sync sync --sku ABC-123`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"products", "categories", "stock-prices"},
	RunE:      runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSKU, "sku", "", "Sync a single item by SKU")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}

	hc, err := cache.New(cfg.Cache, l)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer hc.Close()

	tr := transport.New(cfg.Transport, l)
	remoteClient := remote.NewClient(cfg.Remote, tr, l)
	rates := sync.NewRates(cfg.Sync, hc, tr, l)

	var publisher sync.ImagePublisher
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		pub, err := images.NewPublisher(ctx, store, cfg.Storage, hc, l)
		if err != nil {
			return fmt.Errorf("failed to initialize image publisher: %w", err)
		}
		publisher = pub
	}

	reader := source.NewReader(db, cfg.Source, l)
	engine := sync.NewEngine(cfg.Sync, remoteClient, publisher, hc, rates, l)
	service := sync.NewService(cfg.Sync, engine, reader, l)

	if syncSKU != "" {
		result, err := service.SyncItem(ctx, syncSKU)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("sync failed for %s: %s", result.SKU, result.Message)
		}
		l.Info("Item synced", zap.String("sku", result.SKU), zap.String("result", result.Message))
		return nil
	}

	kind := sync.JobProducts
	if len(args) == 1 {
		switch args[0] {
		case "products":
			kind = sync.JobProducts
		case "categories":
			kind = sync.JobCategories
		case "stock-prices":
			kind = sync.JobStockPrices
		default:
			return fmt.Errorf("unknown pass %q", args[0])
		}
	}

	results := service.Run(ctx, kind)

	var failed int
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	l.Info("Pass finished",
		zap.String("pass", string(kind)),
		zap.Int("total", len(results)),
		zap.Int("failed", failed))

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("pass %s failed for every item", kind)
	}
	return nil
}
