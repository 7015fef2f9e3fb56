// Package pdf implementa la representación imprimible de la factura de un
// paquete.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + NIF  │  N° Factura + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AGENCIA: Dirección / Tel / Email                           │
//	│  EXPEDIDOR y DESTINATARIO: nombre + contacto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Envío | Medida | Total (1 sola línea) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAYER                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de seguimiento + leyenda                        │
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

	appbilling "github.com/tu-usuario/colis-express/internal/application/billing"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/pkg/money"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	trackingBase string // URL base del QR de seguimiento, ej: https://suivi.../t/
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(trackingBase string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{trackingBase: trackingBase}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
// Precondición: parcel.Invoiced() es true (los campos Invoice* no son nil).
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	parcel *entity.Parcel,
	company *entity.Company,
	sender *entity.Client,
	recipient *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+*parcel.InvoiceNumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(parcel, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(agencyRow(company))
	m.AddRows(contactsRow(sender, recipient))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Una factura de paquete siempre lleva una sola línea de detalle
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(parcel))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(parcel))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(parcel, g.trackingBase) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: agencia + NIF (izq) y N° factura + fecha (der).
func headerRow(parcel *entity.Parcel, company *entity.Company) core.Row {
	fecha := parcel.InvoiceDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF : "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(*parcel.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// agencyRow: datos de contacto de la agencia emisora.
func agencyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("AGENCE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Adresse : %s   |   Tél : %s   |   Email : %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// contactsRow: expedidor (izq) y destinatario (der).
func contactsRow(sender, recipient *entity.Client) core.Row {
	block := func(title string, c *entity.Client) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tél : %s   |   %s",
				nonEmpty(c.Phone, "—"),
				nonEmpty(c.Address, nonEmpty(c.Country, "—")),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(16).Add(
		block("EXPÉDITEUR", sender),
		block("DESTINATAIRE", recipient),
	)
}

// tableHeaderRow: cabecera de la línea de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 5, align.Left),
		h("Envoi", 2, align.Center),
		h("Mesure", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// detailRow: la única línea de detalle de la factura.
func detailRow(parcel *entity.Parcel) core.Row {
	desc := parcel.Description
	if desc == "" {
		desc = "Colis " + parcel.TrackingCode
	}
	return row.New(7).Add(
		col.New(5).Add(text.New(
			desc,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			parcel.ShippingType,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			measureLabel(parcel),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			money.Format(*parcel.TotalPrice, *parcel.Currency),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total a pagar, derecha.
func totalRow(parcel *entity.Parcel) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL À PAYER :", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(money.Format(*parcel.TotalPrice, *parcel.Currency), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// footerRows: QR de seguimiento + leyenda.
func footerRows(parcel *entity.Parcel, trackingBase string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("SUIVI DU COLIS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if trackingBase != "" {
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(trackingBase+parcel.TrackingCode, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Scannez le code QR pour suivre\nvotre colis en ligne.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Référence : "+parcel.TrackingCode, props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Référence de suivi : "+parcel.TrackingCode, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Conservez cette facture comme preuve de dépôt. "+
				"Toute réclamation doit être accompagnée de la référence de suivi.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
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

// measureLabel arma la medida facturada según lo que tenga el paquete.
func measureLabel(parcel *entity.Parcel) string {
	if parcel.WeightKg != nil && !parcel.WeightKg.IsZero() {
		return parcel.WeightKg.String() + " kg"
	}
	if parcel.VolumeCbm != nil && !parcel.VolumeCbm.IsZero() {
		return parcel.VolumeCbm.String() + " m³"
	}
	return "—"
}
