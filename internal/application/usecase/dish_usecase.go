package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// DishSoldOut estado de un plato sin unidades.
const DishSoldOut = "Agotado"

// DishUseCase casos de uso del menú.
type DishUseCase struct {
	repo repository.DishRepository
	now  func() time.Time
}

// NewDishUseCase construye el caso de uso.
func NewDishUseCase(repo repository.DishRepository) *DishUseCase {
	return &DishUseCase{repo: repo, now: time.Now}
}

// List platos del menú.
func (uc *DishUseCase) List(ctx context.Context) ([]entity.Dish, error) {
	return uc.repo.List(ctx)
}

// Create valida y persiste un plato nuevo.
func (uc *DishUseCase) Create(ctx context.Context, in entity.Dish) (*entity.Dish, error) {
	if err := validateDish(in); err != nil {
		return nil, err
	}
	in.ID = 0
	in.OrdersToday = 0
	if in.State == "" {
		in.State = entity.DishAvailable
	}
	if in.MaxDailyAmount == 0 {
		in.MaxDailyAmount = in.Amount
	}
	in.LastUpdatedDate = uc.now().Format("2006-01-02")
	if err := uc.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Update reemplaza los datos editables del plato id.
func (uc *DishUseCase) Update(ctx context.Context, id int64, in entity.Dish) (*entity.Dish, error) {
	if err := validateDish(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = in.Name
	current.Description = in.Description
	current.Price = in.Price
	current.Amount = in.Amount
	current.MaxDailyAmount = in.MaxDailyAmount
	current.Image = in.Image
	if in.State != "" {
		current.State = in.State
	}
	current.LastUpdatedDate = uc.now().Format("2006-01-02")
	if err := uc.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func validateDish(d entity.Dish) error {
	if strings.TrimSpace(d.Name) == "" || d.Price.IsNegative() || d.Amount < 0 || d.MaxDailyAmount < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
