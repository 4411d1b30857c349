package repository

import (
	"context"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para los usuarios del comedor.
// Password nunca sale del repositorio: las lecturas devuelven el usuario sin él
// y la verificación de credenciales se hace con PasswordHash.
type UserRepository interface {
	Create(ctx context.Context, user *entity.Customer, passwordHash []byte) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	// GetByMail devuelve el usuario y su hash; ErrNotFound si no existe.
	GetByMail(ctx context.Context, mail string) (*entity.Customer, []byte, error)
	Update(ctx context.Context, user *entity.Customer) error
	List(ctx context.Context) ([]entity.Customer, error)
}

// TempUserRepository cola de auto-registros pendientes.
type TempUserRepository interface {
	Create(ctx context.Context, user *entity.TempUser) error
	List(ctx context.Context) ([]entity.TempUser, error)
	Delete(ctx context.Context, id int64) error
}

// AvatarRepository imágenes de perfil por usuario.
type AvatarRepository interface {
	Put(ctx context.Context, userID int64, contentType string, data []byte) error
	Get(ctx context.Context, userID int64) (contentType string, data []byte, err error)
}
