package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// CompanyUseCase casos de uso de empresas y sedes.
type CompanyUseCase struct {
	companies    repository.CompanyRepository
	headquarters repository.HeadquarterRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companies repository.CompanyRepository, headquarters repository.HeadquarterRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, headquarters: headquarters}
}

func normalizeState(s entity.EntityState) (entity.EntityState, error) {
	switch s {
	case "":
		return entity.StateActive, nil
	case entity.StateActive, entity.StateInactive:
		return s, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// ListCompanies todas las empresas.
func (uc *CompanyUseCase) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	return uc.companies.List(ctx)
}

// CreateCompany valida nombre y estado y persiste.
func (uc *CompanyUseCase) CreateCompany(ctx context.Context, in entity.Company) (*entity.Company, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	state, err := normalizeState(in.State)
	if err != nil {
		return nil, err
	}
	in.ID = 0
	in.State = state
	if err := uc.companies.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// UpdateCompany reemplaza nombre y estado.
func (uc *CompanyUseCase) UpdateCompany(ctx context.Context, id int64, in entity.Company) (*entity.Company, error) {
	current, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		current.Name = name
	}
	if in.State != "" {
		if current.State, err = normalizeState(in.State); err != nil {
			return nil, err
		}
	}
	if err := uc.companies.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteCompany elimina la empresa.
func (uc *CompanyUseCase) DeleteCompany(ctx context.Context, id int64) error {
	return uc.companies.Delete(ctx, id)
}

// ListHeadquarters todas las sedes.
func (uc *CompanyUseCase) ListHeadquarters(ctx context.Context) ([]entity.Headquarter, error) {
	return uc.headquarters.List(ctx)
}

// CreateHeadquarter valida nombre y estado y persiste.
func (uc *CompanyUseCase) CreateHeadquarter(ctx context.Context, in entity.Headquarter) (*entity.Headquarter, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	state, err := normalizeState(in.State)
	if err != nil {
		return nil, err
	}
	in.ID = 0
	in.State = state
	if err := uc.headquarters.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// UpdateHeadquarter reemplaza nombre y estado.
func (uc *CompanyUseCase) UpdateHeadquarter(ctx context.Context, id int64, in entity.Headquarter) (*entity.Headquarter, error) {
	current, err := uc.headquarters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		current.Name = name
	}
	if in.State != "" {
		if current.State, err = normalizeState(in.State); err != nil {
			return nil, err
		}
	}
	if err := uc.headquarters.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteHeadquarter elimina la sede.
func (uc *CompanyUseCase) DeleteHeadquarter(ctx context.Context, id int64) error {
	return uc.headquarters.Delete(ctx, id)
}
