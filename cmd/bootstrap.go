package cmd

import (
	"context"
	"fmt"

	"inventory-manager/core/config"
	"inventory-manager/core/database"
	"inventory-manager/core/logger"
	"inventory-manager/core/metrics"
	"inventory-manager/core/storage"
	"inventory-manager/core/tables"
	"inventory-manager/feature/integrity"
	"inventory-manager/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps bundles what every command needs.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Registry
	client  storage.Client
	db      *gorm.DB
	service *inventory.Service
}

// bootstrap loads configuration, applies flag overrides and wires the
// inventory service to its configured source and sinks.
func bootstrap(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("source-dir") {
		cfg.Inventory.SourceDir = sourceDir
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Inventory.OutputDir = outputDir
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logg, metrics: metrics.NewRegistry()}
	if err := rt.wire(ctx); err != nil {
		return nil, err
	}
	return rt, nil
}

// storageClient creates the object storage client on first use.
func (rt *deps) storageClient() (storage.Client, error) {
	if rt.client != nil {
		return rt.client, nil
	}
	c, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return nil, err
	}
	rt.client = c
	return c, nil
}

func (rt *deps) wire(ctx context.Context) error {
	cfg := rt.cfg

	var source tables.Source
	switch cfg.Inventory.Source {
	case tables.SourceStorage:
		c, err := rt.storageClient()
		if err != nil {
			return err
		}
		source = tables.NewStorageSource(c, cfg.Storage.Bucket, cfg.Storage.InputPrefix)
	case tables.SourceDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		rt.db = db
		rt.logger.Info("Connected to inventory database", zap.String("driver", cfg.Database.Driver))
		source = tables.NewDatabaseSource(db)
	default:
		source = tables.NewFileSource(cfg.Inventory.SourceDir)
	}

	opts := []inventory.Option{inventory.WithMetrics(rt.metrics)}
	var sink tables.Sink = tables.NewDirSink(cfg.Inventory.OutputDir)
	if cfg.Inventory.Publish {
		c, err := rt.storageClient()
		if err != nil {
			return err
		}
		published := tables.NewStorageSink(c, cfg.Storage.Bucket, cfg.Storage.ReportPrefix).
			Protect(cfg.Inventory.ManufacturerFile, cfg.Inventory.PriceFile, cfg.Inventory.ServiceDatesFile)
		if err := published.EnsureBucket(ctx); err != nil {
			return err
		}
		sink = tables.MultiSink{sink, published}
		if cfg.Inventory.Prune {
			opts = append(opts, inventory.WithPruner(published))
		}
	}
	opts = append(opts, inventory.WithSink(sink))

	rt.service = inventory.NewService(source, rt.tableSet(), rt.logger, opts...)
	return nil
}

func (rt *deps) tableSet() tables.Set {
	return tables.NewSet(rt.cfg.Inventory, rt.cfg.Database)
}

// integrityService checks the same source the inventory service reads.
func (rt *deps) integrityService() *integrity.Service {
	return integrity.NewService(rt.cfg.Inventory, rt.tableSet(), rt.client, rt.cfg.Storage, rt.db, rt.logger)
}
