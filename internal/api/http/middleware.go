package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/apierror"
	"github.com/spec-kit/user-service/internal/i18n"
	"github.com/spec-kit/user-service/internal/observability"
)

// RegisterMiddlewares attaches global middlewares: request timeout, locale
// resolution, error rendering and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(localeMiddleware())
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// localeMiddleware resolves Accept-Language into the request context so
// error messages localize per request.
func localeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := i18n.MatchLocale(c.Get(fiber.HeaderAcceptLanguage))
		c.SetUserContext(i18n.WithLocale(c.UserContext(), tag))
		return c.Next()
	}
}

// errorHandlingMiddleware is the single place errors are serialized to
// clients. API errors keep their carried status and code; anything else is
// reported generically without internal detail.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = errors.New("panic")
			}
			if err == nil {
				return
			}

			var apiErr *apierror.Error
			var fiberErr *fiber.Error

			switch {
			case errors.As(err, &apiErr):
				metrics.RecordError(c.Path(), c.Method(), string(apiErr.Code))
				c.Status(apiErr.Status)
				_ = c.JSON(fiber.Map{
					"code":    apiErr.Code,
					"message": apiErr.Message,
					"details": apiErr.Details,
				})
			case errors.As(err, &fiberErr):
				metrics.RecordError(c.Path(), c.Method(), "HTTP_ERROR")
				c.Status(fiberErr.Code)
				_ = c.JSON(fiber.Map{"message": fiberErr.Message})
			default:
				metrics.RecordError(c.Path(), c.Method(), "INTERNAL_ERROR")
				logger.Error("request failed", zap.Error(err))
				c.Status(fiber.StatusInternalServerError)
				_ = c.JSON(fiber.Map{"message": "Unexpected error occurred."})
			}
			err = nil
		}()
		return c.Next()
	}
}
