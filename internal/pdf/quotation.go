// Package pdf renders quotations as PDF documents with maroto.
package pdf

import (
	"fmt"
	"os"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// CompanyData is the issuer block printed in the header.
type CompanyData struct {
	Name     string
	Address  string
	Phone    string
	Website  string
	LogoPath string
}

// ClientData is the addressee block.
type ClientData struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
}

// ItemData is one rendered line.
type ItemData struct {
	Description string
	UnitPrice   float64
	Quantity    int
	Total       float64
}

// QuotationData carries everything the document needs; the handler maps the
// stored aggregate into it so this package stays free of the data model.
type QuotationData struct {
	Number         string
	CreatedDate    time.Time
	ValidUntilDate time.Time
	AdvisorName    string
	Status         string

	Company CompanyData
	Client  ClientData
	Items   []ItemData

	Subtotal      float64
	TaxPercentage float64
	TotalTax      float64
	OtherCharges  float64
	Total         float64

	Terms string
}

// QuotationPDF builds the document and returns the raw bytes.
func QuotationPDF(data QuotationData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(headerRows(data)...)
	m.AddRow(4)
	m.AddRows(clientRows(data)...)
	m.AddRow(6)
	m.AddRows(itemRows(data)...)
	m.AddRow(4)
	m.AddRows(totalRows(data)...)

	if data.Terms != "" {
		m.AddRow(8)
		m.AddRow(6, col.New(12).Add(text.New("Términos y condiciones", props.Text{
			Size: 10, Style: fontstyle.Bold,
		})))
		m.AddRow(20, col.New(12).Add(text.New(data.Terms, props.Text{Size: 8})))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quotation pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(data QuotationData) []core.Row {
	title := col.New(8).Add(
		text.New(data.Company.Name, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.New(data.Company.Address, props.Text{Size: 8, Top: 8}),
		text.New(data.Company.Phone+"  "+data.Company.Website, props.Text{Size: 8, Top: 12}),
	)
	var right core.Col = col.New(4)
	if data.Company.LogoPath != "" {
		if _, err := os.Stat(data.Company.LogoPath); err == nil {
			right = image.NewFromFileCol(4, data.Company.LogoPath, props.Rect{
				Center: true, Percent: 80,
			})
		}
	}
	return []core.Row{
		row.New(18).Add(title, right),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("COTIZACIÓN No. %s", data.Number), props.Text{
				Size: 12, Style: fontstyle.Bold, Align: align.Right,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Fecha: %s    Válida hasta: %s",
				data.CreatedDate.Format("2006-01-02"),
				data.ValidUntilDate.Format("2006-01-02")), props.Text{
				Size: 8, Align: align.Right,
			}),
		)),
		line.NewRow(2),
	}
}

func clientRows(data QuotationData) []core.Row {
	return []core.Row{
		row.New(5).Add(col.New(12).Add(text.New("Cliente", props.Text{Size: 9, Style: fontstyle.Bold}))),
		row.New(5).Add(
			col.New(6).Add(text.New(data.Client.Name, props.Text{Size: 9})),
			col.New(6).Add(text.New(data.Client.ContactPerson, props.Text{Size: 9})),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(data.Client.Email, props.Text{Size: 8})),
			col.New(6).Add(text.New(data.Client.Phone, props.Text{Size: 8})),
		),
		row.New(5).Add(col.New(12).Add(
			text.New("Asesor: "+data.AdvisorName, props.Text{Size: 8}),
		)),
	}
}

func itemRows(data QuotationData) []core.Row {
	head := row.New(7).Add(
		col.New(6).Add(text.New("Descripción", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("Precio", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Cantidad", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Importe", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)
	rows := []core.Row{head, line.NewRow(1)}
	for _, it := range data.Items {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(it.Description, props.Text{Size: 8})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(money(it.Total), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func totalRows(data QuotationData) []core.Row {
	labeled := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(5).Add(
			col.New(8),
			col.New(2).Add(text.New(label, props.Text{Size: 8, Style: style, Align: align.Right})),
			col.New(2).Add(text.New(value, props.Text{Size: 8, Style: style, Align: align.Right})),
		)
	}
	return []core.Row{
		labeled("Subtotal", money(data.Subtotal), false),
		labeled(fmt.Sprintf("IVA %.1f%%", data.TaxPercentage), money(data.TotalTax), false),
		labeled("Otros cargos", money(data.OtherCharges), false),
		labeled("Total", money(data.Total), true),
	}
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }
