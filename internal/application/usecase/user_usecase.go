package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	auth *AuthUseCase
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, auth *AuthUseCase) *UserUseCase {
	return &UserUseCase{repo: repo, auth: auth}
}

// List todos los usuarios (sin contraseña).
func (uc *UserUseCase) List(ctx context.Context) ([]entity.Customer, error) {
	return uc.repo.List(ctx)
}

// Create alta directa por un administrador.
func (uc *UserUseCase) Create(ctx context.Context, in entity.Customer) (*entity.Customer, error) {
	if strings.TrimSpace(in.Mail) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := uc.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	if in.State == "" {
		in.State = entity.StateActive
	}
	if in.Role == "" {
		in.Role = entity.AuthorityUser
	}
	if err := uc.repo.Create(ctx, &in, hash); err != nil {
		return nil, err
	}
	return &in, nil
}

// Update aplica cambios parciales.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UserUpdateRequest) (*entity.Customer, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(user)
	if in.State != nil && *in.State != entity.StateActive && *in.State != entity.StateInactive {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
