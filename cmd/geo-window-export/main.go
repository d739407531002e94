package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/geo-window-export/internal/api/http"
	"github.com/i474232898/geo-window-export/internal/app"
	"github.com/i474232898/geo-window-export/internal/config"
	"github.com/i474232898/geo-window-export/internal/logging"
	"github.com/i474232898/geo-window-export/internal/metrics"
	"github.com/i474232898/geo-window-export/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	m := metrics.New()

	// Exporter over the configured record and blob stores.
	exporter, err := app.NewExporter(context.Background(), cfg, zlog, m)
	if err != nil {
		zlog.Fatal("failed to build exporter", zap.Error(err))
	}

	// Scheduler that keeps the open-ended artifact published.
	sched := scheduler.New(cfg.PrewarmInterval, exporter, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	fiberApp := fiber.New(fiber.Config{
		AppName:               "geo-window-export",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		},
	})

	fiberApp.Use(logger.New())
	fiberApp.Use(recover.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "geo-window-export",
		})
	})

	httpapi.RegisterRoutes(fiberApp, exporter, m)

	go func() {
		zlog.Info("listening", zap.String("port", cfg.Port))
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
