package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// DishService operaciones sobre el menú.
type DishService struct {
	c *Client
}

// NewDishService construye el servicio.
func NewDishService(c *Client) *DishService { return &DishService{c: c} }

// List devuelve los platos del menú.
func (s *DishService) List(ctx context.Context) ([]entity.Dish, error) {
	var out []entity.Dish
	if err := s.c.doJSON(ctx, http.MethodGet, "/Dish/getDish", nil, &out, "Error al obtener el menú"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registra un plato nuevo. Estado por defecto: Disponible.
func (s *DishService) Create(ctx context.Context, dish entity.Dish) (*entity.Dish, error) {
	if dish.State == "" {
		dish.State = entity.DishAvailable
	}
	var out entity.Dish
	if err := s.c.doJSON(ctx, http.MethodPost, "/Dish/saveDish", dish, &out, "Error al crear el plato"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update reemplaza los datos del plato id.
func (s *DishService) Update(ctx context.Context, id int64, dish entity.Dish) (*entity.Dish, error) {
	var out entity.Dish
	path := fmt.Sprintf("/Dish/uptDish/%d", id)
	if err := s.c.doJSON(ctx, http.MethodPut, path, dish, &out, "Error al actualizar el plato"); err != nil {
		return nil, err
	}
	return &out, nil
}
