package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// TempUserPending estado de un auto-registro sin revisar.
const TempUserPending = "Pendiente"

// TempUserUseCase cola de auto-registros.
type TempUserUseCase struct {
	temps repository.TempUserRepository
	users repository.UserRepository
}

// NewTempUserUseCase construye el caso de uso.
func NewTempUserUseCase(temps repository.TempUserRepository, users repository.UserRepository) *TempUserUseCase {
	return &TempUserUseCase{temps: temps, users: users}
}

// Register encola un auto-registro. Un correo ya registrado o pendiente es ErrConflict.
func (uc *TempUserUseCase) Register(ctx context.Context, in entity.TempUser) (*entity.TempUser, error) {
	in.Mail = strings.TrimSpace(in.Mail)
	if in.Mail == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, _, err := uc.users.GetByMail(ctx, in.Mail); err == nil {
		return nil, domain.ErrConflict
	}
	in.ID = 0
	in.State = TempUserPending
	if in.Role == "" {
		in.Role = entity.AuthorityUser
	}
	if err := uc.temps.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// List registros pendientes.
func (uc *TempUserUseCase) List(ctx context.Context) ([]entity.TempUser, error) {
	return uc.temps.List(ctx)
}

// Delete retira un registro (tras aprobarlo o rechazarlo).
func (uc *TempUserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.temps.Delete(ctx, id)
}
