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
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
)

// GenerateTicketPDF genera el ticket de 80 mm. El alto de página se calcula
// del número de líneas para que el documento ocupe una sola página al ancho
// del papel térmico.
func (g *MarotoGenerator) GenerateTicketPDF(_ context.Context, data *appbilling.InvoiceDocumentData) ([]byte, error) {
	inv := data.Invoice

	cfg := config.NewBuilder().
		WithDimensions(ticketWidthMM, ticketHeightMM(len(inv.Details))).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 7}).
		WithTitle("Ticket "+inv.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(ticketHeaderRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.2}))
	for _, r := range ticketDetailRows(inv.Details) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.2}))
	m.AddRows(ticketTotalsRows(inv, data.TaxRate)...)
	m.AddRows(ticketQRRows(data)...)
	m.AddRows(ticketFooterRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ticketHeaderRows: emisor centrado + tipo de documento + número + fecha + cliente.
func ticketHeaderRows(data *appbilling.InvoiceDocumentData) []core.Row {
	inv := data.Invoice
	centered := func(s string, size float64, style fontstyle.Type) core.Row {
		return row.New(4).Add(col.New(12).Add(
			text.New(s, props.Text{Size: size, Style: style, Align: align.Center}),
		))
	}

	rows := []core.Row{
		centered(data.Issuer.Name, 9, fontstyle.Bold),
		centered("NIT: "+nonEmpty(data.Issuer.NIT, "—"), 6.5, fontstyle.Normal),
		centered(nonEmpty(data.Issuer.Address, "—"), 6.5, fontstyle.Normal),
		centered("Tel: "+nonEmpty(data.Issuer.Phone, "—"), 6.5, fontstyle.Normal),
		row.New(2),
		centered(inv.DocumentType, 8, fontstyle.Bold),
	}
	if inv.Status == entity.InvoiceStatusVoided {
		rows = append(rows, centered("*** ANULADA ***", 8, fontstyle.Bold))
	}
	rows = append(rows,
		centered("No. "+inv.Number, 7, fontstyle.Normal),
		centered("Fecha: "+inv.Date.Format("02/01/2006 15:04"), 6.5, fontstyle.Normal),
		centered("Cliente: "+nonEmpty(data.Client.Name, "Consumidor Final"), 6.5, fontstyle.Normal),
		row.New(2),
	)
	return rows
}

// ticketDetailRows: dos renglones por línea — descripción arriba, cantidad ×
// precio y total abajo.
func ticketDetailRows(details []entity.SalesInvoiceDetail) []core.Row {
	rows := make([]core.Row, 0, len(details)*2)
	for _, d := range details {
		rows = append(rows,
			row.New(4).Add(col.New(12).Add(
				text.New(d.Description, props.Text{Size: 7, Align: align.Left}),
			)),
			row.New(4).Add(
				col.New(7).Add(text.New(
					fmt.Sprintf("  %d x $%s", d.Quantity, d.UnitPrice.StringFixed(2)),
					props.Text{Size: 7, Align: align.Left},
				)),
				col.New(5).Add(text.New(
					"$"+d.Total.StringFixed(2),
					props.Text{Size: 7, Align: align.Right},
				)),
			),
		)
	}
	return rows
}

// ticketTotalsRows: subtotal, IVA y total.
func ticketTotalsRows(inv *entity.SalesInvoice, taxRate decimal.Decimal) []core.Row {
	pair := func(label, value string, style fontstyle.Type, size float64) core.Row {
		return row.New(4).Add(
			col.New(7).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Left})),
			col.New(5).Add(text.New(value, props.Text{Size: size, Style: style, Align: align.Right})),
		)
	}
	return []core.Row{
		pair("SUBTOTAL", "$"+inv.SubTotal.StringFixed(2), fontstyle.Normal, 7),
		pair("IVA "+taxPercent(taxRate)+"%", "$"+inv.TaxTotal.StringFixed(2), fontstyle.Normal, 7),
		pair("TOTAL", "$"+inv.GrandTotal.StringFixed(2), fontstyle.Bold, 8),
		row.New(2),
	}
}

// ticketQRRows: QR de verificación con el código de generación debajo.
func ticketQRRows(data *appbilling.InvoiceDocumentData) []core.Row {
	return []core.Row{
		row.New(34).Add(
			col.New(2),
			col.New(8).Add(code.NewQr(data.QRData, props.Rect{Percent: 90, Center: true})),
			col.New(2),
		),
		row.New(4).Add(col.New(12).Add(
			text.New(data.Codigo, props.Text{Size: 5.5, Align: align.Center}),
		)),
	}
}

func ticketFooterRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("¡Gracias por su compra!", props.Text{
			Size: 7, Style: fontstyle.Bold, Align: align.Center, Top: 2,
		}),
	))
}
