package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

func TestGenerateOrdersPDF(t *testing.T) {
	orders := []entity.Order{
		{
			ID:          1,
			User:        entity.Customer{FullName: "Ana Pérez"},
			Dish:        entity.Dish{Name: "Bandeja", Price: entity.NewPrice(decimal.RequireFromString("12.50"))},
			FechaPedido: "2026-10-16",
			State:       entity.OrderDelivered,
		},
		{
			ID:    2,
			User:  entity.Customer{Mail: "luis@x.com"},
			Dish:  entity.Dish{Name: "Sopa", Price: entity.NewPrice(decimal.RequireFromString("5"))},
			State: entity.OrderPending,
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateOrdersPDF(context.Background(), OrdersReport{
		GeneratedBy: "admin@x.com",
		GeneratedAt: time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC),
		Orders:      orders,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateOrdersPDF_SinOrdenes(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateOrdersPDF(context.Background(), OrdersReport{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
