package entity

// Dish plato del menú diario.
type Dish struct {
	ID              int64  `json:"id,omitempty" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description" yaml:"description"`
	Price           Price  `json:"price" yaml:"-"`
	State           string `json:"state" yaml:"state"` // Disponible, Agotado…
	Amount          int    `json:"amount" yaml:"amount"`
	MaxDailyAmount  int    `json:"maxDailyAmount" yaml:"maxDailyAmount"`
	OrdersToday     int    `json:"ordersToday" yaml:"ordersToday"`
	LastUpdatedDate string `json:"lastUpdatedDate,omitempty" yaml:"lastUpdatedDate"`
	Image           string `json:"image,omitempty" yaml:"image"`
}

// DishAvailable estado por defecto de un plato nuevo.
const DishAvailable = "Disponible"
