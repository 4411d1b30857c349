package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO KPIs del tablero del personal, calculados en el cliente
// a partir de órdenes, usuarios y platos.
type DashboardSummaryDTO struct {
	// Ventas: suma del precio de las órdenes entregadas
	TotalSales     decimal.Decimal `json:"total_sales"`
	DeliveredCount int             `json:"delivered_count"`
	AverageTicket  decimal.Decimal `json:"average_ticket"` // TotalSales / DeliveredCount

	TotalOrders     int `json:"total_orders"`
	OrdersToday     int `json:"orders_today"`
	PendingOrders   int `json:"pending_orders"`
	CancelledOrders int `json:"cancelled_orders"`

	ActiveUsers     int `json:"active_users"`
	AvailableDishes int `json:"available_dishes"`

	// Top 5 platos por cantidad de órdenes no canceladas
	TopDishes []TopDishDTO `json:"top_dishes"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// TopDishDTO plato del ranking del tablero.
type TopDishDTO struct {
	DishID  int64           `json:"dish_id"`
	Name    string          `json:"name"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"` // solo órdenes entregadas
}
