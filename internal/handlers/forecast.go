package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/salescast/internal/models"
	"github.com/soltixdb/salescast/internal/services"
)

// Methods lists the available forecast methods
// GET /v1/forecast/methods
func (h *Handler) Methods(c *fiber.Ctx) error {
	return c.JSON(models.MethodsResponse{
		Methods: h.forecastService.Methods(),
		Default: h.defaults.Method,
	})
}

// Forecast handles POST forecast requests
// POST /v1/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	if err := h.validate.StructCtx(c.UserContext(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_FAILED",
				Message: "Request body failed validation",
				Details: map[string]interface{}{"errors": fieldErrors(err)},
			},
		})
	}

	req := h.serviceRequest(&body)
	result, err := h.forecastService.Execute(c.UserContext(), req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(toResponse(result))
}

// serviceRequest applies server defaults to fields the body left unset
func (h *Handler) serviceRequest(body *models.ForecastRequest) *services.ForecastRequest {
	cfg := h.defaults.ModelConfig()
	if body.Alpha != nil {
		cfg.Alpha = *body.Alpha
	}
	if body.TestSize != nil {
		cfg.TestSize = *body.TestSize
	}
	if body.WindowSize > 0 {
		cfg.WindowSize = body.WindowSize
	}

	method := body.Method
	if method == "" {
		method = h.defaults.Method
	}
	periods := h.defaults.Periods
	if body.Periods != nil {
		periods = *body.Periods
	}

	source := body.Source
	if source == "" {
		source = "http"
	}

	return &services.ForecastRequest{
		Values:  body.Values,
		Method:  method,
		Periods: periods,
		Config:  cfg,
		Source:  source,
	}
}

func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("Forecast failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    services.CodeInternal,
				Message: "Internal Server Error",
			},
		})
	}

	status := fiber.StatusInternalServerError
	if svcErr.IsClientError() {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
			Details: svcErr.Details,
		},
	})
}

func toResponse(result *services.ForecastResponse) models.ForecastResponse {
	resp := models.ForecastResponse{
		ID:          result.ID,
		Method:      result.Method,
		Periods:     result.Periods,
		Forecast:    result.Forecast,
		TrainSize:   result.TrainSize,
		TestSize:    result.TestSize,
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339Nano),
	}
	if resp.Forecast == nil {
		resp.Forecast = []float64{}
	}
	if ev := result.Evaluation; ev != nil {
		resp.Evaluation = &models.ForecastEvaluation{
			Actual:    result.Model.TrainTestSplit().Test,
			Predicted: ev.Predictions,
			RMSE:      ev.RMSE,
			MAE:       ev.MAE,
			MAPE:      ev.MAPE,
		}
	}
	return resp
}
