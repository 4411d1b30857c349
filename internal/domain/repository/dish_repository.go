package repository

import (
	"context"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// DishRepository define el puerto de persistencia para los platos del menú.
type DishRepository interface {
	Create(ctx context.Context, dish *entity.Dish) error
	GetByID(ctx context.Context, id int64) (*entity.Dish, error)
	Update(ctx context.Context, dish *entity.Dish) error
	List(ctx context.Context) ([]entity.Dish, error)
}
