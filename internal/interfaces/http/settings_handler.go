package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
)

// SettingsHandler hora de corte (ConfigHr) y cola de registros pendientes.
type SettingsHandler struct {
	settings *usecase.SettingsUseCase
	temps    *usecase.TempUserUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(settings *usecase.SettingsUseCase, temps *usecase.TempUserUseCase) *SettingsHandler {
	return &SettingsHandler{settings: settings, temps: temps}
}

// CutoffTime GET /api/ConfigHr/getConfigHr
func (h *SettingsHandler) CutoffTime(c *fiber.Ctx) error {
	hhmm, err := h.settings.CutoffTime(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(dto.CutoffTimeResponse{CutoffTime: hhmm})
}

// UpdateCutoffTime PUT /api/ConfigHr/actConfigHr?newTime=HH:MM (admin)
func (h *SettingsHandler) UpdateCutoffTime(c *fiber.Ctx) error {
	if err := h.settings.SetCutoffTime(c.UserContext(), c.Query("newTime")); err != nil {
		return fail(c, err, "La hora debe tener formato HH:MM")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTempUsers GET /api/TempUser/getTempUser (admin)
func (h *SettingsHandler) ListTempUsers(c *fiber.Ctx) error {
	out, err := h.temps.List(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// DeleteTempUser DELETE /api/TempUser/deleteTempUser/:id (admin)
func (h *SettingsHandler) DeleteTempUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.temps.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Registro pendiente no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
