package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

var kindStatus = map[common.Kind]int{
	common.KindInvalidInput:        fiber.StatusBadRequest,
	common.KindNotFound:            fiber.StatusNotFound,
	common.KindUpstreamFormat:      fiber.StatusBadGateway,
	common.KindUpstreamUnavailable: fiber.StatusBadGateway,
	common.KindConfiguration:       fiber.StatusServiceUnavailable,
}

// ErrorHandler renders every failure as
// {"error": true, "kind": ..., "message": ..., "details": [...]}.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		kind := common.KindOf(err)
		code, ok := kindStatus[kind]
		if !ok {
			code = fiber.StatusInternalServerError
		}

		// Errors raised by fiber itself, e.g. unknown routes.
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			switch {
			case code == fiber.StatusNotFound:
				kind = common.KindNotFound
			case code < fiber.StatusInternalServerError:
				kind = common.KindInvalidInput
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("request_id", requestID(c)),
				zap.String("path", c.Path()),
				zap.String("kind", string(kind)),
				zap.Strings("trail", common.TrailOf(err)),
				zap.Error(err),
			)
		}

		body := fiber.Map{
			"error":   true,
			"kind":    kind,
			"message": err.Error(),
		}
		if trail := common.TrailOf(err); len(trail) > 0 {
			body["details"] = trail
		}
		return c.Status(code).JSON(body)
	}
}
