// Package pdf genera el comprobante imprimible de una operación de inventario aplicada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de operación + Referencia │ Estado + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN → DESTINO  │  Contraparte                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Unidad | Solicitado | Aplicado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID de la operación + firmas              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain/entity"
)

var _ inventory.VoucherGenerator = (*MarotoVoucherGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var operationTitles = map[entity.OperationType]string{
	entity.OperationIncoming:   "RECEPCIÓN DE MERCANCÍA",
	entity.OperationOutgoing:   "ENTREGA DE MERCANCÍA",
	entity.OperationInternal:   "TRASLADO INTERNO",
	entity.OperationAdjustment: "AJUSTE DE INVENTARIO",
}

// MarotoVoucherGenerator implementa inventory.VoucherGenerator usando Maroto v2.
type MarotoVoucherGenerator struct {
	company string
}

// NewMarotoVoucherGenerator construye el generador; company aparece como autor del PDF.
func NewMarotoVoucherGenerator(company string) *MarotoVoucherGenerator {
	return &MarotoVoucherGenerator{company: company}
}

// GenerateOperationVoucher genera el PDF y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateOperationVoucher(
	_ context.Context,
	op *entity.Operation,
	lines []inventory.VoucherLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de operación "+reference(op), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(op))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(op *entity.Operation) core.Row {
	title, ok := operationTitles[op.Type]
	if !ok {
		title = string(op.Type)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ref: "+reference(op), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(string(op.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Programada: "+op.ScheduleDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func routeRow(op *entity.Operation) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ORIGEN → DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s → %s",
				nonEmpty(op.SourceLocation, "-"),
				nonEmpty(op.DestinationLocation, "-"),
			), props.Text{Size: 10, Top: 7}),
		),
		col.New(4).Add(
			text.New("CONTRAPARTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(op.Partner, "-"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Unidad", 1, align.Center),
		h("Solicitado", 2, align.Right),
		h("Aplicado", 2, align.Right),
	)
}

func tableDetailRows(lines []inventory.VoucherLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(l.UnitMeasure, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatQty(l.Requested), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQty(l.Done), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(lines []inventory.VoucherLine) core.Row {
	requested, done := decimal.Zero, decimal.Zero
	for _, l := range lines {
		requested = requested.Add(l.Requested)
		done = done.Add(l.Done)
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d líneas", len(lines)), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(formatQty(requested), bold)),
		col.New(2).Add(text.New(formatQty(done), bold)),
	)
}

func footerRow(op *entity.Operation) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(op.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("ID: "+op.ID, props.Text{Size: 7, Top: 2, Left: 3, Color: colorGray}),
			text.New("Entregado por: ______________________", props.Text{Size: 9, Top: 14, Left: 3}),
			text.New("Recibido por:  ______________________", props.Text{Size: 9, Top: 26, Left: 3}),
		),
	)
}

func reference(op *entity.Operation) string {
	return nonEmpty(op.Reference, op.ID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty quita ceros decimales sobrantes: 10.5000 → "10.5", 3.0000 → "3".
func formatQty(d decimal.Decimal) string {
	return d.String()
}
