package handlers

import (
	"profilecard/internal/apperrors"
	"profilecard/internal/metrics"
	"profilecard/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RespondError writes err as a JSON error body with the status of its category.
// Internal causes are logged and never sent to the client.
func RespondError(c *fiber.Ctx, kind models.Kind, err error, logger *zap.Logger) error {
	appErr := apperrors.Classify(err)
	metrics.ProfileRejections.WithLabelValues(string(kind), string(appErr.Kind)).Inc()

	if appErr.Kind == apperrors.KindInternal {
		logger.Error("request failed",
			zap.String("kind", string(kind)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	} else {
		logger.Debug("request rejected",
			zap.String("kind", string(kind)),
			zap.String("code", appErr.Code),
			zap.Error(err))
	}

	body := fiber.Map{
		"message": appErr.Message,
		"code":    appErr.Code,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	return c.Status(appErr.Status()).JSON(body)
}
