package analytics

import (
	"context"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// OrderSource lista todas las órdenes (GET /Order/getOrders).
type OrderSource interface {
	List(ctx context.Context) ([]entity.Order, error)
}

// CustomerSource lista los usuarios registrados.
type CustomerSource interface {
	List(ctx context.Context) ([]entity.Customer, error)
}

// DishSource lista los platos del menú.
type DishSource interface {
	List(ctx context.Context) ([]entity.Dish, error)
}
