package repository

import (
	"context"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context) ([]entity.Company, error)
	Delete(ctx context.Context, id int64) error
}

// HeadquarterRepository sedes de entrega.
type HeadquarterRepository interface {
	Create(ctx context.Context, hq *entity.Headquarter) error
	GetByID(ctx context.Context, id int64) (*entity.Headquarter, error)
	Update(ctx context.Context, hq *entity.Headquarter) error
	List(ctx context.Context) ([]entity.Headquarter, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsRepository parámetros generales (hora de corte).
type SettingsRepository interface {
	CutoffTime(ctx context.Context) (string, error)
	SetCutoffTime(ctx context.Context, hhmm string) error
}
