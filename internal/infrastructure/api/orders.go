package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// OrderService operaciones sobre pedidos.
type OrderService struct {
	c *Client
}

// NewOrderService construye el servicio.
func NewOrderService(c *Client) *OrderService { return &OrderService{c: c} }

// List todos los pedidos (vista de personal).
func (s *OrderService) List(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	if err := s.c.doJSON(ctx, http.MethodGet, "/Order/getOrder", nil, &out, "Error al obtener las órdenes"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser historial de pedidos de un usuario.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	var out []entity.Order
	path := fmt.Sprintf("/Order/findOrder/%d", userID)
	if err := s.c.doJSON(ctx, http.MethodGet, path, nil, &out, "Error al obtener tus órdenes"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registra un pedido; siempre nace Pendiente.
func (s *OrderService) Create(ctx context.Context, order entity.NewOrder) (*entity.Order, error) {
	order.State = entity.OrderPending
	var out entity.Order
	if err := s.c.doJSON(ctx, http.MethodPost, "/Order/saveOrder", order, &out, "Error al crear la orden"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateState cambia el estado del pedido. El estado viaja en la query en su forma canónica.
func (s *OrderService) UpdateState(ctx context.Context, orderID int64, state entity.OrderStatus) (*entity.Order, error) {
	canon, ok := entity.ParseOrderStatus(string(state))
	if !ok {
		return nil, &Error{Op: "updateOrderState", Message: fmt.Sprintf("estado de orden desconocido: %q", state), Err: domain.ErrInvalidInput}
	}
	q := url.Values{"state": {string(canon)}}
	path := fmt.Sprintf("/Order/updateOrderState/%d/state?%s", orderID, q.Encode())

	var out entity.Order
	if err := s.c.doJSON(ctx, http.MethodPatch, path, nil, &out, "Error al actualizar el estado de la orden"); err != nil {
		return nil, err
	}
	return &out, nil
}
