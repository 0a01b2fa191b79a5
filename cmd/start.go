package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mpu-janitor/core/loader"
	"mpu-janitor/core/logger"
	"mpu-janitor/core/middleware/auth"
	"mpu-janitor/core/middleware/rayid"
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"

	"mpu-janitor/feature/buckets"
	"mpu-janitor/feature/events"
	"mpu-janitor/feature/history"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mpu-janitor/docs/swagger"
)

// @title MPU Janitor API
// @version 1.0
// @description Keeps an abort-incomplete-multipart-upload lifecycle rule on every bucket.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the webhook and API server",
	Long:  `Starts the HTTP server receiving bucket creation events and serving the bucket API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app, err := newServer(a)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("addr", a.cfg.Server.Addr()))
			if err := app.Listen(a.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newServer builds the fiber app with middleware and every enabled feature.
func newServer(a *app) (*fiber.App, error) {
	logg := a.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Bucket listings are cached; lifecycle reads and writes always hit storage
	client := storage.Client(a.client)
	if ttl := a.cfg.Server.BucketCacheTTL(); ttl > 0 {
		client = storage.NewCachedClient(a.client, ttl)
	}

	opts, err := a.reconcileOptions(false, 0)
	if err != nil {
		return nil, err
	}

	r := reconcile.New(client, logg)
	obs := a.observer()

	mgr := loader.NewManager(logg)
	mgr.Register(events.NewFeature(r, opts, obs, logg))
	mgr.Register(buckets.NewFeature(client, r, opts, obs, logg))
	mgr.Register(history.NewFeature(a.audit, logg))

	// RayID first so every log line can be traced
	app.Use(rayid.New())

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

	// Public endpoints
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))

	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}

	return app, nil
}
