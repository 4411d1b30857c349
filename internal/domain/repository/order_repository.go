package repository

import (
	"context"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para los pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]entity.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Order, error)
}
