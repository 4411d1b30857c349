// Package analytics calcula los indicadores del tablero del personal.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

const dashboardTopDishes = 5 // platos en el widget del tablero

// DashboardUseCase genera el resumen del tablero.
//
// El backend no expone agregados: se descargan órdenes, usuarios y platos y se
// calcula todo en el cliente.
type DashboardUseCase struct {
	orders    OrderSource
	customers CustomerSource
	dishes    DishSource
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(orders OrderSource, customers CustomerSource, dishes DishSource) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, customers: customers, dishes: dishes, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. órdenes  → ventas, ticket promedio, órdenes de hoy, top platos
//  2. usuarios → usuarios activos
//  3. platos   → platos disponibles
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	type ordersResult struct {
		orders []entity.Order
		err    error
	}
	type customersResult struct {
		customers []entity.Customer
		err       error
	}
	type dishesResult struct {
		dishes []entity.Dish
		err    error
	}

	ordersCh := make(chan ordersResult, 1)
	customersCh := make(chan customersResult, 1)
	dishesCh := make(chan dishesResult, 1)

	go func() {
		orders, err := uc.orders.List(ctx)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		customers, err := uc.customers.List(ctx)
		customersCh <- customersResult{customers, err}
	}()
	go func() {
		dishes, err := uc.dishes.List(ctx)
		dishesCh <- dishesResult{dishes, err}
	}()

	orders := <-ordersCh
	customers := <-customersCh
	dishes := <-dishesCh

	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", orders.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", customers.err)
	}
	if dishes.err != nil {
		return nil, fmt.Errorf("dashboard: platos: %w", dishes.err)
	}

	summary := summarizeOrders(orders.orders, now)
	for _, c := range customers.customers {
		if c.State == entity.StateActive {
			summary.ActiveUsers++
		}
	}
	for _, d := range dishes.dishes {
		if d.State == entity.DishAvailable {
			summary.AvailableDishes++
		}
	}
	summary.DateLabel = monthLabel(now)
	return summary, nil
}

func summarizeOrders(orders []entity.Order, now time.Time) *dto.DashboardSummaryDTO {
	s := &dto.DashboardSummaryDTO{
		TotalSales:    decimal.Zero,
		AverageTicket: decimal.Zero,
		TotalOrders:   len(orders),
		TopDishes:     []dto.TopDishDTO{},
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	ranking := map[int64]*dto.TopDishDTO{}
	for _, o := range orders {
		if day, ok := o.OrderedOn(); ok && day.Equal(today) {
			s.OrdersToday++
		}

		switch o.State {
		case entity.OrderPending:
			s.PendingOrders++
		case entity.OrderCancelled:
			s.CancelledOrders++
			continue
		case entity.OrderDelivered:
			s.DeliveredCount++
			s.TotalSales = s.TotalSales.Add(o.Dish.Price.Decimal)
		}

		top, ok := ranking[o.Dish.ID]
		if !ok {
			top = &dto.TopDishDTO{DishID: o.Dish.ID, Name: o.Dish.Name, Revenue: decimal.Zero}
			ranking[o.Dish.ID] = top
		}
		top.Orders++
		if o.State == entity.OrderDelivered {
			top.Revenue = top.Revenue.Add(o.Dish.Price.Decimal)
		}
	}

	if s.DeliveredCount > 0 {
		s.AverageTicket = s.TotalSales.Div(decimal.NewFromInt(int64(s.DeliveredCount))).Round(2)
	}
	s.TotalSales = s.TotalSales.Round(2)

	for _, top := range ranking {
		top.Revenue = top.Revenue.Round(2)
		s.TopDishes = append(s.TopDishes, *top)
	}
	slices.SortFunc(s.TopDishes, func(a, b dto.TopDishDTO) int {
		if c := cmp.Compare(b.Orders, a.Orders); c != 0 {
			return c
		}
		return cmp.Compare(a.DishID, b.DishID)
	})
	if len(s.TopDishes) > dashboardTopDishes {
		s.TopDishes = s.TopDishes[:dashboardTopDishes]
	}
	return s
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
