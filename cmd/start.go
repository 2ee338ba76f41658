package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"inventory-manager/core/loader"
	"inventory-manager/core/logger"
	"inventory-manager/core/middleware/auth"
	"inventory-manager/core/middleware/rayid"
	"inventory-manager/feature/integrity"
	"inventory-manager/feature/inventory"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "inventory-manager/docs/swagger"
)

// @title Inventory Manager API
// @version 1.0
// @description API for querying the merged inventory and its reports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory server",
	Long:  `Builds the inventory, then serves items, reports and queries over HTTP until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		zap.ReplaceGlobals(rt.logger)

		// Fail fast on unreadable tables instead of on the first request.
		if _, err := rt.service.Reload(ctx); err != nil {
			return err
		}

		app, err := newServer(rt)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			rt.logger.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			errCh <- app.Listen(rt.cfg.Server.Addr())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case err := <-errCh:
			return err
		case <-sig:
		}
		rt.logger.Info("Shutting down server...")
		return app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newServer builds the fiber application with middleware and features.
func newServer(rt *deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	mgr := loader.NewManager()
	mgr.Register(inventory.NewFeature(rt.service))
	mgr.Register(integrity.NewFeature(rt.integrityService()))

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(rt.logger, c)
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

	// Public endpoints.
	app.Get("/swagger/*", swagger.HandlerDefault)
	if path := rt.cfg.Server.MetricsPath; path != "" {
		app.Get(path, adaptor.HTTPHandler(rt.metrics.Handler()))
	}

	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
