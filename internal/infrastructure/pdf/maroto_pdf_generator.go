// Package pdf genera el reporte de órdenes del comedor para el personal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + sede/filtro  │  fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Usuario | Plato | Estado | Precio        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: órdenes / entregadas / ventas                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// OrdersReport datos del reporte.
type OrdersReport struct {
	Title       string // ej. "Reporte de órdenes"
	Subtitle    string // filtro aplicado, sede…
	GeneratedBy string
	GeneratedAt time.Time
	Orders      []entity.Order
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera reportes usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrdersPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrdersPDF(_ context.Context, report OrdersReport) ([]byte, error) {
	if report.Title == "" {
		report.Title = "Reporte de órdenes"
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(nonEmpty(report.GeneratedBy, "comedor"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Orders)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Orders))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report OrdersReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(report.Subtitle, "Todas las órdenes"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(nonEmpty(report.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Fecha", 2, align.Left),
		h("Usuario", 3, align.Left),
		h("Plato", 3, align.Left),
		h("Estado", 1, align.Center),
		h("Precio", 2, align.Right),
	)
}

// tableDetailRows: una fila por orden.
func tableDetailRows(orders []entity.Order) []core.Row {
	result := make([]core.Row, 0, len(orders))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, o := range orders {
		day := "—"
		if d, ok := o.OrderedOn(); ok {
			day = d.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			cell(strconv.FormatInt(o.ID, 10), 1, align.Center),
			cell(day, 2, align.Left),
			cell(nonEmpty(o.User.FullName, o.User.Mail), 3, align.Left),
			cell(o.Dish.Name, 3, align.Left),
			cell(o.State.String(), 1, align.Center),
			cell(o.Dish.Price.Display(), 2, align.Right),
		))
	}
	return result
}

// totalsRow: conteos y ventas de las órdenes entregadas.
func totalsRow(orders []entity.Order) core.Row {
	delivered := 0
	sales := decimal.Zero
	for _, o := range orders {
		if o.State == entity.OrderDelivered {
			delivered++
			sales = sales.Add(o.Dish.Price.Decimal)
		}
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Órdenes:"), label("Entregadas:"), label("Ventas:")),
		col.New(3).Add(
			value(strconv.Itoa(len(orders))),
			value(strconv.Itoa(delivered)),
			value(entity.NewPrice(sales).Display()),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
