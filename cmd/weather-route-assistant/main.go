package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-route-assistant/internal/api/http"
	"github.com/i474232898/weather-route-assistant/internal/chart"
	"github.com/i474232898/weather-route-assistant/internal/config"
	"github.com/i474232898/weather-route-assistant/internal/location"
	locproviders "github.com/i474232898/weather-route-assistant/internal/location/providers"
	"github.com/i474232898/weather-route-assistant/internal/logging"
	"github.com/i474232898/weather-route-assistant/internal/route"
	routeproviders "github.com/i474232898/weather-route-assistant/internal/route/providers"
	"github.com/i474232898/weather-route-assistant/internal/scheduler"
	"github.com/i474232898/weather-route-assistant/internal/upstream"
	"github.com/i474232898/weather-route-assistant/internal/weather"
	weatherproviders "github.com/i474232898/weather-route-assistant/internal/weather/providers"
)

const (
	serviceName = "weather-route-assistant"
	userAgent   = serviceName + "/1.0"
	staticPath  = "/static"
)

func main() {
	// Load configuration. Missing credentials stop the process here.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Shared HTTP client for outbound provider calls. Per-attempt deadlines
	// come from the callers' contexts.
	httpClient := &http.Client{}
	client := upstream.NewClient(httpClient, userAgent, upstream.DefaultBreakerSettings())

	mapsCreds := locproviders.MapsCredentials{KeyID: cfg.NcloudAPIKeyID, Key: cfg.NcloudAPIKey}

	// Address geocoding: Naver first, Google when a key is configured.
	geocoders := location.Geocoders{
		locproviders.NewNaverGeocoder(client, mapsCreds, cfg.NaverGeocodeURLs, cfg.MapsTimeout, log),
	}
	if cfg.GoogleGeocoderAPIKey != "" {
		geocoders = append(geocoders, locproviders.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey, cfg.MapsTimeout))
		log.Info("google geocoder fallback enabled")
	}

	search := locproviders.NewNaverLocalSearch(client, locproviders.SearchCredentials{
		ClientID:     cfg.NaverClientID,
		ClientSecret: cfg.NaverClientSecret,
	}, cfg.NaverLocalSearchURL, cfg.MapsTimeout, log)

	places := location.NewPlaceResolver(search, geocoders, log)
	chain := location.NewChain(geocoders, places, log)

	directions := routeproviders.NewNaverDirections(client, mapsCreds, cfg.NaverDirectionsURLs,
		routeproviders.DefaultOptions(), cfg.DirectionsTimeout, log)
	routeService := route.NewService(chain, directions, log)

	// Weather report with charts written to the static directory.
	renderer := chart.NewRenderer(cfg.ChartDir)
	owm := weatherproviders.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL,
		cfg.WeatherLang, cfg.WeatherTimeout, log)
	weatherService := weather.NewService(owm, renderer, staticPath, log)

	// Scheduler that periodically removes stale charts.
	sched := scheduler.New(renderer, cfg.ChartPruneInterval, cfg.ChartMaxAge, log)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Route planning may walk several geocode and directions attempts.
		WriteTimeout: 90 * time.Second,
		ErrorHandler: httpapi.ErrorHandler(log),
	})

	// Global middleware
	app.Use(httpapi.RequestID())
	app.Use(httpapi.RequestLogger(log))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})

	app.Static(staticPath, cfg.ChartDir)

	// API routes.
	httpapi.RegisterRoutes(app, weatherService, routeService)

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}
