package http

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

const maxAvatarBytes = 2 << 20

// UserHandler usuarios registrados y sus avatares.
type UserHandler struct {
	uc      *usecase.UserUseCase
	avatars repository.AvatarRepository
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, avatars repository.AvatarRepository) *UserHandler {
	return &UserHandler{uc: uc, avatars: avatars}
}

// List GET /api/User/getUser (admin)
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// Create POST /api/User/saveUser (admin)
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in entity.Customer
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Correo y contraseña son requeridos, o el correo ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/User/updateUser/:id (admin)
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UserUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "No se pudo actualizar el usuario")
	}
	return c.JSON(out)
}

// UploadAvatar POST /api/UserAvatar/:id/avatar (multipart, campo "avatar").
// Cada usuario sube el suyo; el administrador puede subir cualquiera.
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if GetRole(c) != entity.RoleAdmin && GetUserID(c) != id {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puedes cambiar tu propio avatar"})
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el campo avatar es requerido"})
	}
	if fh.Size > maxAvatarBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "la imagen supera 2 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, err, "")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes))
	if err != nil {
		return fail(c, err, "")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if err := h.avatars.Put(c.UserContext(), id, contentType, data); err != nil {
		return fail(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Avatar GET /api/UserAvatar/:id/avatar
func (h *UserHandler) Avatar(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	contentType, data, err := h.avatars.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "El usuario no tiene avatar")
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
