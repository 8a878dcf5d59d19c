package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/models"
)

// MinAPIKeyLength is the minimum required length for API keys
const MinAPIKeyLength = 32

// ValidateAPIKey checks if an API key meets the security requirements
func ValidateAPIKey(key string) bool {
	return len(key) >= MinAPIKeyLength && strings.TrimSpace(key) != ""
}

// APIKeyAuth rejects requests without one of the configured API keys.
// Keys shorter than MinAPIKeyLength are ignored.
func APIKeyAuth(logger *logging.Logger, cfg config.AuthConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key == "" {
			continue
		}
		if !ValidateAPIKey(key) {
			logger.Warn("Ignoring weak API key",
				"key_length", len(key),
				"min_required", MinAPIKeyLength,
				"key_prefix", maskAPIKey(key))
			continue
		}
		keys[key] = struct{}{}
	}
	if len(keys) == 0 {
		logger.Error("Authentication is enabled but no valid API keys are configured",
			"total_keys", len(cfg.APIKeys))
	}

	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKey(c)
		if apiKey == "" {
			logger.Warn("API key missing", "path", c.Path(), "ip", c.IP())
			return unauthorized(c, "API key is required. Provide it via X-API-Key header or Authorization header.")
		}
		if _, ok := keys[apiKey]; !ok {
			logger.Warn("Invalid API key",
				"path", c.Path(),
				"ip", c.IP(),
				"api_key_prefix", maskAPIKey(apiKey))
			return unauthorized(c, "Invalid API key.")
		}
		return c.Next()
	}
}

// extractAPIKey reads X-API-Key, then Authorization with or without a Bearer prefix
func extractAPIKey(c *fiber.Ctx) string {
	if key := c.Get("X-API-Key"); key != "" {
		return key
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return auth
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}

// maskAPIKey shows only the first 4 chars
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
