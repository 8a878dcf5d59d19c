package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/handlers"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/metrics"
	"github.com/soltixdb/salescast/internal/middleware"
	"github.com/soltixdb/salescast/internal/services"
)

// Setup configures all routes and middlewares. recorder may be nil, in which case
// /metrics is not served.
func Setup(app *fiber.App, logger *logging.Logger, forecastService *services.ForecastService,
	recorder *metrics.Recorder, cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, forecastService, cfg.Forecast)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// No auth on health and metrics
	app.Get("/health", h.Health)
	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
	}

	v1 := app.Group("/v1", middleware.APIKeyAuth(logger, cfg.Auth))
	v1.Get("/forecast/methods", h.Methods)
	v1.Post("/forecast", h.Forecast)

	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, forecastService *services.ForecastService,
	recorder *metrics.Recorder, cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Salescast API",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, forecastService, recorder, cfg)

	return app
}
