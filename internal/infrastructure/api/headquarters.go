package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// HeadquarterService sedes de entrega.
type HeadquarterService struct {
	c *Client
}

// NewHeadquarterService construye el servicio.
func NewHeadquarterService(c *Client) *HeadquarterService { return &HeadquarterService{c: c} }

// List todas las sedes.
func (s *HeadquarterService) List(ctx context.Context) ([]entity.Headquarter, error) {
	var out []entity.Headquarter
	if err := s.c.doJSON(ctx, http.MethodGet, "/Headquarter/getHeadquarter", nil, &out, "Error al obtener las sedes"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registra una sede.
func (s *HeadquarterService) Create(ctx context.Context, hq entity.Headquarter) (*entity.Headquarter, error) {
	if hq.State == "" {
		hq.State = entity.StateActive
	}
	var out entity.Headquarter
	if err := s.c.doJSON(ctx, http.MethodPost, "/Headquarter/saveHeadquarter", hq, &out, "Error al guardar la sede"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update actualiza la sede id.
func (s *HeadquarterService) Update(ctx context.Context, id int64, hq entity.Headquarter) (*entity.Headquarter, error) {
	var out entity.Headquarter
	path := fmt.Sprintf("/Headquarter/updateHeadquarter/%d", id)
	if err := s.c.doJSON(ctx, http.MethodPut, path, hq, &out, "Error al actualizar la sede"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina la sede id.
func (s *HeadquarterService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/Headquarter/deleteHeadquarter/%d", id)
	return s.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "Error al eliminar la sede")
}
