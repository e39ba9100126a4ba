package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockops/internal/application/dto"
	"github.com/jhoicas/stockops/internal/domain"
)

// statusFor traduce el tipo de error de dominio a código HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvariantViolation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTransient):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch statusFor(err) {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "INVALID_STATE"
	case fiber.StatusUnprocessableEntity:
		return "INVARIANT_VIOLATION"
	case fiber.StatusBadRequest:
		return "VALIDATION"
	case fiber.StatusServiceUnavailable:
		return "TRANSIENT"
	default:
		return "INTERNAL"
	}
}

// writeError responde con dto.ErrorResponse; el mensaje nunca expone detalles de infraestructura.
func writeError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{Code: codeFor(err), Message: domain.Reason(err)})
}
