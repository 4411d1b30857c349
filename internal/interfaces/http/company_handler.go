package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// CompanyHandler maneja las peticiones HTTP de empresas y sedes.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// ListCompanies GET /api/Company/getCompany
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListCompanies(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// CreateCompany POST /api/Company/saveCompany
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	var in entity.Company
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCompany(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "El nombre es requerido y el estado debe ser Activo o Inactivo")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCompany PUT /api/Company/updateCompany/:id
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in entity.Company
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCompany(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Empresa no encontrada o estado inválido")
	}
	return c.JSON(out)
}

// DeleteCompany DELETE /api/Company/deleteCompany/:id
func (h *CompanyHandler) DeleteCompany(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.DeleteCompany(c.UserContext(), id); err != nil {
		return fail(c, err, "Empresa no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHeadquarters GET /api/Headquarter/getHeadquarter
func (h *CompanyHandler) ListHeadquarters(c *fiber.Ctx) error {
	out, err := h.uc.ListHeadquarters(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// CreateHeadquarter POST /api/Headquarter/saveHeadquarter
func (h *CompanyHandler) CreateHeadquarter(c *fiber.Ctx) error {
	var in entity.Headquarter
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateHeadquarter(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "El nombre es requerido y el estado debe ser Activo o Inactivo")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateHeadquarter PUT /api/Headquarter/updateHeadquarter/:id
func (h *CompanyHandler) UpdateHeadquarter(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in entity.Headquarter
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateHeadquarter(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Sede no encontrada o estado inválido")
	}
	return c.JSON(out)
}

// DeleteHeadquarter DELETE /api/Headquarter/deleteHeadquarter/:id
func (h *CompanyHandler) DeleteHeadquarter(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.DeleteHeadquarter(c.UserContext(), id); err != nil {
		return fail(c, err, "Sede no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
