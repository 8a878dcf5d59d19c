package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/models"
)

// ErrorHandler renders errors that escape handlers in the JSON error envelope.
// Messages of non-fiber errors are not exposed.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		code := "INTERNAL_ERROR"
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
			code = errorCode(message)
		}

		logger.WithContext(c.UserContext()).Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err)

		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}

// errorCode turns "Request Entity Too Large" into REQUEST_ENTITY_TOO_LARGE
func errorCode(message string) string {
	return strings.ToUpper(strings.Join(strings.Fields(message), "_"))
}
