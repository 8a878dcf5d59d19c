package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	forecastService *services.ForecastService
	defaults        config.ForecastConfig
	validate        *validator.Validate
}

// New creates a new handler instance. defaults fill fields a request leaves unset.
func New(logger *logging.Logger, forecastService *services.ForecastService, defaults config.ForecastConfig) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: forecastService,
		defaults:        defaults,
		validate:        validator.New(),
	}
}
