package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// OrderHandler maneja los pedidos.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func caller(c *fiber.Ctx) usecase.Caller {
	return usecase.Caller{UserID: GetUserID(c), Role: GetRole(c)}
}

// List GET /api/Order/getOrder (personal)
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// ListByUser GET /api/Order/findOrder/:id
func (h *OrderHandler) ListByUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.ListByUser(c.UserContext(), caller(c), id)
	if err != nil {
		return fail(c, err, "Solo puedes consultar tus propias órdenes")
	}
	return c.JSON(out)
}

// Create POST /api/Order/saveOrder
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in entity.NewOrder
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), caller(c), in)
	if err != nil {
		return fail(c, err, "Usuario, plato o sede no encontrados")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateState PATCH /api/Order/updateOrderState/:id/state?state=Entregado (personal)
func (h *OrderHandler) UpdateState(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.UpdateState(c.UserContext(), id, entity.OrderStatus(c.Query("state")))
	if err != nil {
		return fail(c, err, "Estado de orden inválido")
	}
	return c.JSON(out)
}
