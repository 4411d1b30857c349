package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain"
)

// fail responde el error de negocio con su status. Errores no reconocidos → 500.
func fail(c *fiber.Ctx, err error, msg string) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, usecase.ErrOrderingClosed):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, usecase.ErrOrderForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, usecase.ErrDishUnavailable),
		errors.Is(err, usecase.ErrOrderFinalized):
		status, code = fiber.StatusConflict, "CONFLICT"
	}
	if msg == "" || status == fiber.StatusInternalServerError || isBusinessError(err) {
		msg = err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// isBusinessError errores cuyo texto ya es el mensaje a mostrar.
func isBusinessError(err error) bool {
	return errors.Is(err, usecase.ErrOrderingClosed) ||
		errors.Is(err, usecase.ErrDishUnavailable) ||
		errors.Is(err, usecase.ErrOrderFinalized) ||
		errors.Is(err, usecase.ErrOrderForbidden)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
}
