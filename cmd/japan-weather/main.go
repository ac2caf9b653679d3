package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"

	httpapi "github.com/i474232898/japan-weather/internal/api/http"
	"github.com/i474232898/japan-weather/internal/config"
	"github.com/i474232898/japan-weather/internal/entities"
	"github.com/i474232898/japan-weather/internal/scheduler"
	"github.com/i474232898/japan-weather/internal/store"
	"github.com/i474232898/japan-weather/internal/weather"
	"github.com/i474232898/japan-weather/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(log)

	// Long-lived client for the upstream API, released by service.Close.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	provider := providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoBaseURL, cfg.HTTPTimeout)

	memStore := store.NewMemoryStore()
	service := weather.NewService(memStore, provider, weather.WithLogger(log))
	defer func() {
		if err := service.Close(); err != nil {
			log.Warn("failed to close weather service", slog.Any("error", err))
		}
	}()

	board := entities.NewBoard(memStore, cfg.TrendHistory)
	service.OnUpdate(board.Observe)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(cfg.Location(), cfg.FetchInterval, cfg.HTTPTimeout, service, log)
	if err := sched.Start(ctx); err != nil {
		log.Error("initial weather refresh failed", slog.Any("error", err))
		stop()
		_ = service.Close()
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "japan-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "japan-weather",
			"refresh":   sched.Status(),
			"snapshots": memStore.Generation(),
		})
	})

	httpapi.RegisterRoutes(app, memStore, board, sched)

	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Error("fiber server stopped", slog.Any("error", err))
		}
	}()
	log.Info("japan-weather started",
		slog.String("addr", cfg.ListenAddr()),
		slog.Float64("latitude", cfg.Latitude),
		slog.Float64("longitude", cfg.Longitude))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", slog.Any("error", err))
	}
}
