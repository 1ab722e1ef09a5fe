package handlers

import (
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the Fiber error handler. It maps the error taxonomy to a
// status code and writes {"error": ...}, adding "errors" for field failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	body := fiber.Map{"error": err.Error()}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		body["error"] = apperr.ErrValidation.Error()
		body["errors"] = verr.Fields
	}
	if status == fiber.StatusInternalServerError {
		body["error"] = "internal server error"
	}

	log := logger.FromCtx(c).With(zap.Int("status", status), zap.Error(err))
	switch {
	case status >= fiber.StatusInternalServerError:
		log.Error("Request failed")
	case status == fiber.StatusNotFound:
		log.Debug("Request rejected")
	default:
		log.Info("Request rejected")
	}
	return c.Status(status).JSON(body)
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, apperr.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrIllegalTransition):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrUpstreamPayment):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
