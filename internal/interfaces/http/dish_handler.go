package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// DishHandler maneja el menú.
type DishHandler struct {
	uc *usecase.DishUseCase
}

// NewDishHandler construye el handler.
func NewDishHandler(uc *usecase.DishUseCase) *DishHandler {
	return &DishHandler{uc: uc}
}

// List GET /api/Dish/getDish
func (h *DishHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// Create POST /api/Dish/saveDish (personal)
func (h *DishHandler) Create(c *fiber.Ctx) error {
	var in entity.Dish
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Nombre y precio válidos son requeridos")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/Dish/uptDish/:id (personal)
func (h *DishHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in entity.Dish
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Plato no encontrado o datos inválidos")
	}
	return c.JSON(out)
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
