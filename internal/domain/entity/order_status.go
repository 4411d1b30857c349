package entity

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OrderStatus estado de una orden. Vocabulario canónico del backend: título en español.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pendiente"
	OrderDelivered OrderStatus = "Entregado"
	OrderCancelled OrderStatus = "Cancelado"
)

// ParseOrderStatus normaliza cualquier variante de mayúsculas (PENDIENTE, pendiente…)
// a la forma canónica. Valores desconocidos resuelven a OrderPending con ok=false:
// una orden con estado ilegible nunca se considera cerrada.
func ParseOrderStatus(s string) (st OrderStatus, ok bool) {
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	canon := OrderStatus(cases.Title(language.Spanish).String(strings.TrimSpace(s)))
	switch canon {
	case OrderPending, OrderDelivered, OrderCancelled:
		return canon, true
	default:
		return OrderPending, false
	}
}

// IsFinal indica si la orden ya no admite cambios de estado.
func (s OrderStatus) IsFinal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s, _ = ParseOrderStatus(raw)
	return nil
}

func (s OrderStatus) String() string { return string(s) }
