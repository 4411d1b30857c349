package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// CompanyService empresas configuradas.
type CompanyService struct {
	c *Client
}

// NewCompanyService construye el servicio.
func NewCompanyService(c *Client) *CompanyService { return &CompanyService{c: c} }

// List todas las empresas.
func (s *CompanyService) List(ctx context.Context) ([]entity.Company, error) {
	var out []entity.Company
	if err := s.c.doJSON(ctx, http.MethodGet, "/Company/getCompany", nil, &out, "Error al obtener las empresas"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registra una empresa.
func (s *CompanyService) Create(ctx context.Context, company entity.Company) (*entity.Company, error) {
	if company.State == "" {
		company.State = entity.StateActive
	}
	var out entity.Company
	if err := s.c.doJSON(ctx, http.MethodPost, "/Company/saveCompany", company, &out, "Error al guardar la empresa"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update actualiza la empresa id.
func (s *CompanyService) Update(ctx context.Context, id int64, company entity.Company) (*entity.Company, error) {
	var out entity.Company
	path := fmt.Sprintf("/Company/updateCompany/%d", id)
	if err := s.c.doJSON(ctx, http.MethodPut, path, company, &out, "Error al actualizar la empresa"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina la empresa id.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/Company/deleteCompany/%d", id)
	return s.c.doJSON(ctx, http.MethodDelete, path, nil, nil, "Error al eliminar la empresa")
}
