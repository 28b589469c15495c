// Package pdf genera el acuse de la factura por orden de compra: un resumen
// imprimible de lo que se va a registrar.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + RFC     │  Orden de compra + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURA: Folio / Moneda / Importe / Sociedad                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Entrada | Material | Fecha | IVA | Monto             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL SELECCIONADO                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: archivos adjuntos + huellas SHA-256                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AcuseGenerator arma el acuse con Maroto v2.
type AcuseGenerator struct {
	money *money.Formatter
	now   func() time.Time
}

// NewAcuseGenerator construye el generador. f nil usa es-MX.
func NewAcuseGenerator(f *money.Formatter) *AcuseGenerator {
	if f == nil {
		f = money.NewFormatter("")
	}
	return &AcuseGenerator{money: f, now: time.Now}
}

// Generate genera el PDF del asistente en curso y devuelve sus bytes.
func (g *AcuseGenerator) Generate(ctx context.Context, v wizard.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	currency := v.InvoiceData.Currency
	if currency == "" {
		currency = entity.CurrencyMXN
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acuse de factura por orden de compra", true).
		WithAuthor(nonEmpty(v.CurrentSupplierName, "Reciboo"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.invoiceRow(v, currency))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(v.SelectedGRs, currency) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(v, currency))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range filesFooterRows(v) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acuse: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor + RFC (izq) y orden de compra + fecha (der).
func (g *AcuseGenerator) headerRow(v wizard.View) core.Row {
	po := "—"
	if v.SelectedPOID != nil {
		po = *v.SelectedPOID
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(v.CurrentSupplierName, "Proveedor sin seleccionar"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+nonEmpty(v.SelectedSupplierRFC, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACUSE DE FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("OC "+po, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// invoiceRow: datos capturados de la factura.
func (g *AcuseGenerator) invoiceRow(v wizard.View, currency string) core.Row {
	d := v.InvoiceData
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Folio: %s   |   Moneda: %s   |   Importe: %s   |   Sociedad: %s",
				nonEmpty(d.Folio, "—"),
				currency,
				g.money.Format(d.Amount, currency),
				nonEmpty(d.Company, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de entradas seleccionadas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Entrada", 2, align.Left),
		h("Material", 4, align.Left),
		h("Fecha", 2, align.Center),
		h("IVA", 2, align.Right),
		h("Monto", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por entrada seleccionada.
func (g *AcuseGenerator) tableDetailRows(grs []entity.GoodsReceipt, currency string) []core.Row {
	result := make([]core.Row, 0, len(grs))
	for _, gr := range grs {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(gr.Number, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(gr.Material, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(gr.Date, "—"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money.Format(gr.Tax, currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money.Format(gr.Amount, currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: total de las entradas seleccionadas alineado a la derecha.
func (g *AcuseGenerator) totalsRow(v wizard.View, currency string) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New(fmt.Sprintf("TOTAL (%d entradas):", len(v.SelectedGRs)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.money.Format(v.TotalSelectedAmount, currency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// filesFooterRows: archivos adjuntos con su huella y un QR con la huella del XML.
func filesFooterRows(v wizard.View) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ARCHIVOS ADJUNTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, f := range []struct {
		label string
		file  *entity.FileHandle
	}{{"PDF", v.SelectedPDF}, {"XML", v.SelectedXML}} {
		if f.file == nil {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(f.label+": sin archivo", props.Text{Size: 7, Color: colorGray, Top: 1}),
			)))
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s (%d bytes)", f.label, f.file.Name, f.file.Size), props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
		for _, chunk := range splitEvery(f.file.Fingerprint, 80) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}

	if v.SelectedXML != nil && v.SelectedXML.Fingerprint != "" {
		rows = append(rows, row.New(3), row.New(40).Add(
			col.New(3).Add(code.NewQr(v.SelectedXML.Fingerprint, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Huella SHA-256 del XML canonicalizado.\nPermite verificar que el CFDI enviado es el mismo.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Este acuse no sustituye al comprobante fiscal. Conserve el CFDI original como soporte.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
