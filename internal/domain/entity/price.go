package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price precio exacto de un plato. El backend lo maneja como texto libre
// ("$12.50", "12.50") y a veces como número; ambos se aceptan.
type Price struct {
	decimal.Decimal
}

// NewPrice construye un precio desde un decimal.
func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d} }

// ParsePrice interpreta el formato de texto del backend.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Price{Decimal: decimal.Zero}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("precio inválido %q: %w", s, err)
	}
	return Price{Decimal: d}, nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		p.Decimal = decimal.Zero
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("precio inválido %s: %w", b, err)
	}
	p.Decimal = d
	return nil
}

// MarshalJSON envía el precio como texto con dos decimales, como lo guarda el backend.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.StringFixed(2))
}

// Display formato de presentación: $12.50
func (p Price) Display() string {
	return "$" + p.StringFixed(2)
}
