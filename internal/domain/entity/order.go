package entity

import "time"

// Order pedido de un usuario. FechaPedido conserva el nombre del backend.
type Order struct {
	ID          int64       `json:"id,omitempty"`
	User        Customer    `json:"user"`
	Dish        Dish        `json:"dish"`
	FechaPedido string      `json:"fechaPedido,omitempty"`
	State       OrderStatus `json:"state"`
	Observation string      `json:"observation,omitempty"`
	Headquarter Headquarter `json:"headquarter"`
}

// OrderedOn devuelve la fecha (día) del pedido; ok=false si el backend no la informó
// o viene en un formato no reconocido.
func (o Order) OrderedOn() (time.Time, bool) {
	if len(o.FechaPedido) < len("2006-01-02") {
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", o.FechaPedido[:10])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// NewOrder cuerpo de /Order/saveOrder.
type NewOrder struct {
	User        IDRef       `json:"user"`
	Dish        IDRef       `json:"dish"`
	Headquarter IDRef       `json:"headquarter"`
	State       OrderStatus `json:"state"`
	Observation string      `json:"observation,omitempty"`
}

// IDRef referencia por id para cuerpos de escritura.
type IDRef struct {
	ID int64 `json:"id"`
}
