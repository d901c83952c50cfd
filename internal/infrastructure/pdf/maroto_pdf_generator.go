// Package pdf genera la ficha PDF de una empresa con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre comercial + TIN  │  Estado + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS FISCALES: Razón social / Sistema fiscal              │
//	│  UBICACIÓN: País / Estado / Ciudad / Dirección / C.P.       │
//	│  CONTACTO: Teléfono / Email / Sitio web                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (sitio web o TIN) + auditoría                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
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

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	entity.CompanyStatusActive:    "ACTIVA",
	entity.CompanyStatusInactive:  "INACTIVA",
	entity.CompanyStatusSuspended: "SUSPENDIDA",
	entity.CompanyStatusWaiting:   "EN ESPERA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.CompanyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// CompanySheet genera la ficha y devuelve sus bytes. Country y State pueden venir nil.
func (g *MarotoPDFGenerator) CompanySheet(d *entity.CompanyDetails) ([]byte, error) {
	if d == nil || d.Company == nil {
		return nil, fmt.Errorf("pdf: empresa requerida")
	}
	c := d.Company

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de empresa "+c.TIN, true).
		WithAuthor(c.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionRows("DATOS FISCALES", fiscalLines(c))...)
	m.AddRows(sectionRows("UBICACIÓN", locationLines(d))...)
	m.AddRows(sectionRows("CONTACTO", contactLines(c))...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(c))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + TIN (izq) y estado + fecha de emisión (der).
func headerRow(c *entity.Company, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(c.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("TIN: "+c.TIN, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("FICHA DE EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(statusLabel(c.Status), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitida: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

type field struct{ label, value string }

// sectionRows: título de sección y una fila por campo.
func sectionRows(title string, fields []field) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, f := range fields {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(f.label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2})),
			col.New(9).Add(text.New(f.value, props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

func fiscalLines(c *entity.Company) []field {
	tax := c.TaxSystem
	if region, ok := entity.TaxSystems[c.TaxSystem]; ok {
		tax = fmt.Sprintf("%s (%s)", c.TaxSystem, region)
	}
	return []field{
		{"Razón social", orDash(c.LegalName)},
		{"Sistema fiscal", tax},
		{"TIN", c.TIN},
	}
}

func locationLines(d *entity.CompanyDetails) []field {
	country := fmt.Sprintf("ID %d", d.Company.CountryID)
	if d.Country != nil {
		country = fmt.Sprintf("%s (%s)", d.Country.Name, d.Country.ISOCode2)
	}
	state := "-"
	if d.State != nil {
		state = fmt.Sprintf("%s (%s)", d.State.Name, d.State.Code)
	}
	return []field{
		{"País", country},
		{"Estado", state},
		{"Ciudad", orDash(d.Company.City)},
		{"Dirección", orDash(d.Company.Address)},
		{"Código postal", orDash(d.Company.PostalCode)},
	}
}

func contactLines(c *entity.Company) []field {
	return []field{
		{"Teléfono", orDash(c.Phone)},
		{"Email", orDash(c.Email)},
		{"Sitio web", orDash(c.Website)},
	}
}

// footerRow: QR con el sitio web (o el TIN si no hay) y sellos de auditoría.
func footerRow(c *entity.Company) core.Row {
	audit := fmt.Sprintf("Creada: %s\nÚltima modificación: %s",
		c.CreatedAt.Format("02/01/2006 15:04"), c.UpdatedAt.Format("02/01/2006 15:04"))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qrData(c), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(audit, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Documento informativo, sin validez fiscal.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 22, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func qrData(c *entity.Company) string {
	if c.Website != nil && *c.Website != "" {
		return *c.Website
	}
	return c.TaxSystem + ":" + c.TIN
}

func statusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return strings.ToUpper(status)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
