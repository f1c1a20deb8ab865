// Package pdf genera el comprobante de un documento de ingreso de cilindros.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + sucursal      │  Prefijo/Docto + Fecha     │
//	│  TERCERO: Nombre + NIT + código                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Detalle | Bodega | Cant | Precio | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad / Valor                                   │
//	│  OBSERVACIONES + usuario                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appmovement "github.com/jhoicas/Cilindros-api/internal/application/movement"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

var _ appmovement.VoucherGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa movement.VoucherGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateMovementPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementPDF(_ context.Context, detail *entity.MovementDetail) ([]byte, error) {
	if detail == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ingreso de cilindros "+detail.Header.Docto, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, detail.Header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(terceroRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(detail.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(detail.Lines))
	m.AddRows(row.New(4))
	m.AddRows(footerRow(detail.Header))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company string, h entity.MovementHeader) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Cilindros"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Sucursal %s   |   Transacción %s", h.Sucursal, h.TransacDocto), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INGRESO DE CILINDROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(h.Prefijo+" "+h.Docto, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+h.Fecha.Format("02/01/2006")+" "+h.Hora, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func terceroRow(d *entity.MovementDetail) core.Row {
	nombre, nit := "—", "—"
	if d.Tercero != nil {
		nombre = nonEmpty(d.Tercero.NombreTercero, "—")
		nit = nonEmpty(d.Tercero.NitTercero, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Código: %s   |   NIT: %s", d.Header.Codcli, nit), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 2, align.Left),
		h("Detalle", 4, align.Left),
		h("Bodega", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Precio", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableLineRows una fila por cilindro.
func tableLineRows(lines []entity.MovementLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			cell(l.CodigoArticulo, 2, align.Left),
			cell(l.Detalle, 4, align.Left),
			cell(l.Bodega, 1, align.Center),
			cell(l.Cantidad.StringFixed(3), 1, align.Right),
			cell("$"+formatMoney(l.PrecioDocto), 2, align.Right),
			cell("$"+formatMoney(l.Total()), 2, align.Right),
		))
	}
	return rows
}

func totalsRow(lines []entity.MovementLine) core.Row {
	qty, total := decimal.Zero, decimal.Zero
	for _, l := range lines {
		qty = qty.Add(l.Cantidad)
		total = total.Add(l.Total())
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			label("Cilindros:"),
			text.New("Valor total:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
		),
		col.New(3).Add(
			value(qty.StringFixed(3), 0),
			value("$"+formatMoney(total), 5),
		),
	)
}

func footerRow(h entity.MovementHeader) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Observaciones: "+nonEmpty(h.Observaciones, "—"), props.Text{Size: 8, Top: 1}),
		text.New(fmt.Sprintf("Registrado por %s el %s", nonEmpty(h.Usuario, "—"), h.FechaTransaccion.Format("02/01/2006 15:04")), props.Text{
			Size: 7, Top: 7, Color: colorGray,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma. Ej: 1234567.5 -> "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
