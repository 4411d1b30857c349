package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// TempUserService cola de auto-registros pendientes de aprobación.
type TempUserService struct {
	c *Client
}

// NewTempUserService construye el servicio.
func NewTempUserService(c *Client) *TempUserService { return &TempUserService{c: c} }

// List registros pendientes.
func (s *TempUserService) List(ctx context.Context) ([]entity.TempUser, error) {
	var out []entity.TempUser
	if err := s.c.doJSON(ctx, http.MethodGet, "/TempUser/getTempUser", nil, &out, "Error al obtener los usuarios pendientes"); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un registro pendiente.
func (s *TempUserService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/TempUser/deleteTempUser/%d", id)
	return s.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "Error al eliminar el usuario pendiente")
}

// Approve crea el usuario definitivo y retira el registro pendiente.
// Si el alta funciona pero el borrado falla, el usuario queda creado y se devuelve el error del borrado.
func (s *TempUserService) Approve(ctx context.Context, pending entity.TempUser) error {
	if err := s.c.doJSON(ctx, http.MethodPost, "/auth/registerUser", pending.Registration(), nil, "Error al registrar el usuario"); err != nil {
		return err
	}
	if err := s.Delete(ctx, pending.ID); err != nil {
		return fmt.Errorf("usuario %s aprobado, pero sigue en pendientes: %w", pending.Mail, err)
	}
	return nil
}

// Reject descarta el registro pendiente.
func (s *TempUserService) Reject(ctx context.Context, id int64) error {
	return s.Delete(ctx, id)
}
