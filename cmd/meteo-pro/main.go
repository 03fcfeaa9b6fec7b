package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/botaynabessar/meteo-pro-2.000/internal/api/http"
	"github.com/botaynabessar/meteo-pro-2.000/internal/cache"
	"github.com/botaynabessar/meteo-pro-2.000/internal/config"
	"github.com/botaynabessar/meteo-pro-2.000/internal/openmeteo"
	"github.com/botaynabessar/meteo-pro-2.000/internal/scheduler"
	"github.com/botaynabessar/meteo-pro-2.000/internal/session"
	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Open-Meteo gateway wrapped with the per-operation TTL cache.
	client := openmeteo.NewClient(httpClient, openmeteo.Config{
		MaxRetries:        cfg.RetryMax,
		RetryDelay:        cfg.RetryDelay,
		RequestsPerSecond: 5,
		Burst:             10,
	})
	gateway := cache.NewGateway(client, cache.TTLConfig{
		Forecast:   cfg.ForecastTTL,
		Geocoding:  cfg.GeocodingTTL,
		AirQuality: cfg.AirQualityTTL,
	})

	service := weather.NewService(gateway)
	sessions := session.NewStore(cfg.SessionMaxAge)

	// Background refresh keeps tracked cities warm in the cache.
	sched := scheduler.New(cfg.TrackedCities, cfg.DefaultUnits, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "meteo-pro",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
			"status":  "ok",
			"service": "meteo-pro",
		})
	})

	handler := httpapi.NewHandler(service, sessions, cfg.DefaultUnits)
	handler.RegisterRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
