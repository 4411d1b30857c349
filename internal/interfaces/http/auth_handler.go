package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// AuthHandler maneja login, alta definitiva y auto-registro.
type AuthHandler struct {
	uc    *usecase.AuthUseCase
	temps *usecase.TempUserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *usecase.AuthUseCase, temps *usecase.TempUserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, temps: temps}
}

// Authenticate godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuthenticateRequest  true  "user, password"
// @Success      200   {object}  dto.AuthenticateResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/authenticate [post]
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	var in dto.AuthenticateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Authenticate(c.UserContext(), in)
	if err != nil {
		msg := "Credenciales inválidas"
		if errors.Is(err, domain.ErrForbidden) {
			msg = "La cuenta está inactiva"
		}
		return fail(c, err, msg)
	}
	return c.JSON(out)
}

// RegisterUser alta definitiva (aprobación de un registro pendiente). Solo administradores.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var in entity.UserRegistration
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		msg := "Correo y contraseña son requeridos"
		if errors.Is(err, domain.ErrConflict) {
			msg = "El correo ya está registrado"
		}
		return fail(c, err, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// SaveTempUser auto-registro público; queda pendiente de aprobación.
func (h *AuthHandler) SaveTempUser(c *fiber.Ctx) error {
	var in entity.TempUser
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.temps.Register(c.UserContext(), in)
	if err != nil {
		msg := "Nombre, correo y contraseña son requeridos"
		if errors.Is(err, domain.ErrConflict) {
			msg = "El correo ya está registrado o pendiente de aprobación"
		}
		return fail(c, err, msg)
	}
	out.Password = ""
	return c.Status(fiber.StatusCreated).JSON(out)
}
