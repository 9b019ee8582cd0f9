package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/cache"
	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/storage"
	"catalog-sync/core/transport"

	"catalog-sync/feature/images"
	"catalog-sync/feature/remote"
	"catalog-sync/feature/source"
	"catalog-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog sync server",
	Long:  `Starts the HTTP control server and the periodic reconciliation scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

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

		// 3. Connect to the source catalog database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to source database", zap.Error(err))
		}
		logg.Info("Connected to source catalog database")

		// 4. Hybrid cache (mappings, rates, listings)
		hc, err := cache.New(cfg.Cache, logg)
		if err != nil {
			logg.Fatal("Failed to initialize cache", zap.Error(err))
		}
		defer hc.Close()

		// 5. Remote transport and API client
		tr := transport.New(cfg.Transport, logg)
		remoteClient := remote.NewClient(cfg.Remote, tr, logg)
		rates := sync.NewRates(cfg.Sync, hc, tr, logg)

		// 6. Image publishing (optional)
		var publisher sync.ImagePublisher
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			pub, err := images.NewPublisher(ctx, store, cfg.Storage, hc, logg)
			if err != nil {
				logg.Fatal("Failed to initialize image publisher", zap.Error(err))
			}
			publisher = pub
		} else {
			logg.Info("Image storage disabled, products sync without images")
		}

		// 7. Reconciliation engine and service
		reader := source.NewReader(db, cfg.Source, logg)
		engine := sync.NewEngine(cfg.Sync, remoteClient, publisher, hc, rates, logg)
		service := sync.NewService(cfg.Sync, engine, reader, logg)

		// 8. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 9. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(cfg.Sync, service, logg))

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

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 10. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 11. Kick off periodic syncing
		if err := service.Start(ctx); err != nil {
			logg.Warn("Scheduler did not start", zap.Error(err))
		}

		// 12. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 13. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		service.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
