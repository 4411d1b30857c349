package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// CustomerUpdate cambios parciales de un usuario (campos opcionales).
type CustomerUpdate = dto.UserUpdateRequest

// CustomerService gestión de usuarios registrados.
type CustomerService struct {
	c *Client
}

// NewCustomerService construye el servicio.
func NewCustomerService(c *Client) *CustomerService { return &CustomerService{c: c} }

// List todos los usuarios.
func (s *CustomerService) List(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	if err := s.c.doJSON(ctx, http.MethodGet, "/User/getUser", nil, &out, "Error al obtener los usuarios"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create da de alta un usuario.
func (s *CustomerService) Create(ctx context.Context, customer entity.Customer) (*entity.Customer, error) {
	if customer.State == "" {
		customer.State = entity.StateActive
	}
	var out entity.Customer
	if err := s.c.doJSON(ctx, http.MethodPost, "/User/saveUser", customer, &out, "Error al crear el usuario"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica cambios parciales al usuario id.
func (s *CustomerService) Update(ctx context.Context, id int64, in CustomerUpdate) (*entity.Customer, error) {
	var out entity.Customer
	path := fmt.Sprintf("/User/updateUser/%d", id)
	if err := s.c.doJSON(ctx, http.MethodPut, path, in, &out, "Error al actualizar el usuario"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateState activa o inactiva un usuario.
func (s *CustomerService) UpdateState(ctx context.Context, id int64, state entity.EntityState) (*entity.Customer, error) {
	return s.Update(ctx, id, CustomerUpdate{State: &state})
}
