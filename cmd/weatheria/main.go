package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"

	httpapi "github.com/weatheria/weatheria/internal/api/http"
	"github.com/weatheria/weatheria/internal/chat"
	"github.com/weatheria/weatheria/internal/config"
	"github.com/weatheria/weatheria/internal/geo"
	"github.com/weatheria/weatheria/internal/resolve"
	"github.com/weatheria/weatheria/internal/scheduler"
	"github.com/weatheria/weatheria/internal/store"
	"github.com/weatheria/weatheria/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	if !cfg.HasWeatherKey() {
		slog.Warn("OPENWEATHER_API_KEY not set; weather and geocoding endpoints will report a configuration error")
	}
	if !cfg.HasGeminiKey() {
		slog.Warn("GOOGLE_GEMINI_API_KEY not set; chat will reply that it is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Provider gateways.
	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)
	geoClient := geo.NewClient(cfg.OpenWeatherAPIKey)

	relay, err := chat.NewRelay(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("failed to create chat relay: %v", err)
	}

	// Resolver over the gateways; stage transitions go to the log.
	resolver := resolve.New(weatherClient, geoClient)
	resolver.SetStatusFunc(func(status string) {
		slog.Info("resolving location", "status", status)
	})

	// Single session slot, kept fresh by the scheduler.
	session := store.NewSession()

	sched := scheduler.New(session, weatherClient, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weatheria",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatheria",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Config:   cfg,
		Weather:  weatherClient,
		Geo:      geoClient,
		Chat:     relay,
		Resolver: resolver,
		Session:  session,
	})

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
