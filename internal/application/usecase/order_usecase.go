package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// Errores de negocio de pedidos.
var (
	ErrOrderingClosed  = errors.New("la hora límite para realizar pedidos ya pasó")
	ErrDishUnavailable = errors.New("el plato no está disponible")
	ErrOrderFinalized  = errors.New("la orden ya fue entregada o cancelada")
	ErrOrderForbidden  = errors.New("solo puedes crear órdenes a tu nombre")
)

// Caller usuario autenticado que ejecuta la operación.
type Caller struct {
	UserID int64
	Role   entity.Role
}

// OrderUseCase pedidos: alta con hora de corte y existencias, y cambio de estado.
type OrderUseCase struct {
	orders       repository.OrderRepository
	dishes       repository.DishRepository
	users        repository.UserRepository
	headquarters repository.HeadquarterRepository
	settings     repository.SettingsRepository
	now          func() time.Time

	mu sync.Mutex // serializa la reserva de unidades del plato
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	dishes repository.DishRepository,
	users repository.UserRepository,
	headquarters repository.HeadquarterRepository,
	settings repository.SettingsRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		dishes:       dishes,
		users:        users,
		headquarters: headquarters,
		settings:     settings,
		now:          time.Now,
	}
}

// List todos los pedidos.
func (uc *OrderUseCase) List(ctx context.Context) ([]entity.Order, error) {
	return uc.orders.List(ctx)
}

// ListByUser pedidos del usuario. Un usuario sin rol de personal solo ve los suyos.
func (uc *OrderUseCase) ListByUser(ctx context.Context, caller Caller, userID int64) ([]entity.Order, error) {
	if !caller.Role.IsStaff() && caller.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return uc.orders.ListByUser(ctx, userID)
}

// Create registra un pedido en estado Pendiente y descuenta una unidad del plato.
func (uc *OrderUseCase) Create(ctx context.Context, caller Caller, in entity.NewOrder) (*entity.Order, error) {
	if !caller.Role.IsStaff() && in.User.ID != caller.UserID {
		return nil, ErrOrderForbidden
	}
	now := uc.now()
	if err := uc.checkCutoff(ctx, now); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, in.User.ID)
	if err != nil {
		return nil, err
	}
	hq, err := uc.headquarters.GetByID(ctx, in.Headquarter.ID)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	dish, err := uc.dishes.GetByID(ctx, in.Dish.ID)
	if err != nil {
		return nil, err
	}
	if dish.State != entity.DishAvailable || dish.Amount <= 0 {
		return nil, ErrDishUnavailable
	}
	dish.Amount--
	dish.OrdersToday++
	if dish.Amount == 0 {
		dish.State = DishSoldOut
	}
	if err := uc.dishes.Update(ctx, dish); err != nil {
		return nil, err
	}

	order := &entity.Order{
		User:        *user,
		Dish:        *dish,
		FechaPedido: now.Format("2006-01-02T15:04:05"),
		State:       entity.OrderPending,
		Observation: in.Observation,
		Headquarter: *hq,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateState pasa un pedido pendiente a Entregado o Cancelado.
// Cancelar devuelve la unidad al plato.
func (uc *OrderUseCase) UpdateState(ctx context.Context, id int64, state entity.OrderStatus) (*entity.Order, error) {
	state, ok := entity.ParseOrderStatus(string(state))
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.State == state {
		return order, nil
	}
	if order.State.IsFinal() {
		return nil, ErrOrderFinalized
	}
	if state == entity.OrderCancelled {
		if dish, err := uc.dishes.GetByID(ctx, order.Dish.ID); err == nil {
			dish.Amount++
			dish.OrdersToday = max(dish.OrdersToday-1, 0)
			if dish.State == DishSoldOut {
				dish.State = entity.DishAvailable
			}
			if err := uc.dishes.Update(ctx, dish); err != nil {
				return nil, err
			}
		}
	}
	order.State = state
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUseCase) checkCutoff(ctx context.Context, now time.Time) error {
	cutoff, err := uc.settings.CutoffTime(ctx)
	if err != nil {
		return err
	}
	limit, err := time.Parse("15:04", cutoff)
	if err != nil {
		// Sin hora de corte (o ilegible): no se bloquean pedidos
		return nil
	}
	minutes := now.Hour()*60 + now.Minute()
	if minutes >= limit.Hour()*60+limit.Minute() {
		return ErrOrderingClosed
	}
	return nil
}
