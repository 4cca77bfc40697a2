package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
)

// BusinessInfo is the issuer identity printed in the invoice header.
type BusinessInfo struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
}

type InvoiceGenerator struct {
	Business BusinessInfo
}

func NewInvoiceGenerator(business BusinessInfo) *InvoiceGenerator {
	return &InvoiceGenerator{Business: business}
}

// Generate renders an invoice to PDF bytes.
func (g *InvoiceGenerator) Generate(invoice *models.Invoice) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	// Business header
	m.AddRow(10,
		col.New(8).Add(
			text.New(g.Business.Name, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
			}),
		),
		col.New(4).Add(
			text.New("INVOICE", props.Text{
				Size:  20,
				Style: fontstyle.BoldItalic,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(6,
		col.New(8).Add(
			text.New(g.Business.ContactName, props.Text{Size: 10}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Invoice #: %s", invoice.ID), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5,
		col.New(8).Add(
			text.New(g.Business.Email, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Date: %s", invoice.InvoiceDate.Format("January 2, 2006")), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5,
		col.New(8).Add(
			text.New(g.Business.Address, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Due Date: %s", invoice.InvoiceDue.Format("January 2, 2006")), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(8)
	m.AddRow(6,
		col.New(12).Add(
			text.New("Bill To", props.Text{Size: 10, Style: fontstyle.Bold}),
		),
	)
	m.AddRow(5,
		col.New(12).Add(
			text.New(fmt.Sprintf("%s %s", invoice.ClientFirst, invoice.ClientLast), props.Text{Size: 10}),
		),
	)
	if invoice.ClientEmail != "" {
		m.AddRow(5,
			col.New(12).Add(
				text.New(invoice.ClientEmail, props.Text{Size: 9}),
			),
		)
	}

	m.AddRow(8)
	m.AddRow(6,
		col.New(12).Add(
			text.New(fmt.Sprintf("Billing Period: %s - %s",
				invoice.StartDate.Format("Jan 2, 2006"),
				invoice.EndDate.Format("Jan 2, 2006")), props.Text{Size: 9}),
		),
	)
	m.AddRow(4, line.NewCol(12))

	// Tracked time
	g.addAmountRow(m, fmt.Sprintf("Tracked time (%s)", billing.FormatDuration(invoice.TimeEntriesSum)), g.timeAmountLabel(invoice))

	// Line items
	for _, item := range invoice.LineItems {
		kind := "Fixed"
		if item.Hourly {
			kind = "Hourly"
		}
		label := fmt.Sprintf("%s (%s, %.2f x %.2f)", item.Description, kind, item.Rate, item.Multiplier)
		g.addAmountRow(m, label, fmt.Sprintf("$%.2f", item.Total))
	}

	if invoice.ProjectCosts != 0 {
		g.addAmountRow(m, "Project costs", fmt.Sprintf("$%.2f", invoice.ProjectCosts))
	}
	if invoice.Adjustments != 0 {
		label := "Adjustments"
		if invoice.AdjustmentsDescriptor != "" {
			label = fmt.Sprintf("Adjustments (%s)", invoice.AdjustmentsDescriptor)
		}
		g.addAmountRow(m, label, fmt.Sprintf("$%.2f", invoice.Adjustments))
	}
	if invoice.Fees != 0 {
		g.addAmountRow(m, "Fees", fmt.Sprintf("-$%.2f", invoice.Fees))
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		col.New(8).Add(
			text.New("Total Due", props.Text{Size: 12, Style: fontstyle.Bold}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("$%.2f", invoice.Totals().GrandTotal()), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	if invoice.Paid {
		m.AddRow(6,
			col.New(12).Add(
				text.New(fmt.Sprintf("PAID via %s", invoice.PaymentMethod), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
				}),
			),
		)
	}

	if invoice.Notes != "" {
		m.AddRow(8)
		m.AddRow(5,
			col.New(12).Add(
				text.New(invoice.Notes, props.Text{Size: 8}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func (g *InvoiceGenerator) timeAmountLabel(invoice *models.Invoice) string {
	amount, ok := billing.TimeAmount(invoice.TimeEntriesSum, invoice.ProjectHourly)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", amount)
}

func (g *InvoiceGenerator) addAmountRow(m core.Maroto, label, amount string) {
	m.AddRow(6,
		col.New(8).Add(
			text.New(label, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(amount, props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)
}
