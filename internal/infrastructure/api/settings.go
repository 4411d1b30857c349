package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
)

// CutoffConfig hora límite diaria para recibir pedidos.
type CutoffConfig = dto.CutoffTimeResponse

// SettingsService parámetros generales (ConfigHr).
type SettingsService struct {
	c *Client
}

// NewSettingsService construye el servicio.
func NewSettingsService(c *Client) *SettingsService { return &SettingsService{c: c} }

// CutoffTime hora de corte vigente.
func (s *SettingsService) CutoffTime(ctx context.Context) (string, error) {
	var out CutoffConfig
	if err := s.c.doJSON(ctx, http.MethodGet, "/ConfigHr/getConfigHr", nil, &out, "Error al obtener la hora de corte"); err != nil {
		return "", err
	}
	return out.CutoffTime, nil
}

// UpdateCutoffTime cambia la hora de corte. newTime debe tener formato HH:MM.
func (s *SettingsService) UpdateCutoffTime(ctx context.Context, newTime string) error {
	if _, err := time.Parse("15:04", newTime); err != nil {
		return &Error{Op: "actConfigHr", Message: "la hora debe tener formato HH:MM", Err: domain.ErrInvalidInput}
	}
	q := url.Values{"newTime": {newTime}}
	return s.c.doJSON(ctx, http.MethodPut, "/ConfigHr/actConfigHr?"+q.Encode(), nil, nil, "Error al actualizar la hora de corte")
}
