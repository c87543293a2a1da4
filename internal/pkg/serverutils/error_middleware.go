package serverutils

import (
	"ai-interviewprep-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// JSON error responses using the apperr taxonomy. Streaming handlers never
// reach this path once the response has started; they emit terminal error
// frames instead.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		// Fiber's own errors (404 route, body limit) keep their status
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		kind := apperr.KindOf(err)
		return ctx.Status(apperr.HTTPStatus(kind)).JSON(ErrorResponse(apperr.ClientMessage(err)))
	}
}
