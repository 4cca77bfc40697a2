package pdf

import (
	"testing"
	"time"

	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice() *models.Invoice {
	rate := 80.0
	return &models.Invoice{
		ID:             "client-1-06102024",
		CreatedAt:      time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		StartDate:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC),
		InvoiceDate:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		InvoiceDue:     time.Date(2024, 6, 24, 23, 59, 59, 0, time.UTC),
		ClientID:       "client-1",
		ClientFirst:    "Ada",
		ClientLast:     "Lovelace",
		ClientEmail:    "ada@example.com",
		ProjectName:    "Engine",
		ProjectHourly:  &rate,
		TimeEntriesSum: 7200,
		LineItems: []billing.LineItem{
			{Description: "Design review", Hourly: false, Rate: 150, Multiplier: 1, Total: 150},
		},
		LineItemsTotal: 150,
		ProjectCosts:   25,
		Fees:           5,
		Notes:          "Thank you for your business.",
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	generator := NewInvoiceGenerator(BusinessInfo{
		Name:        "Opsdesk LLC",
		ContactName: "Grace Hopper",
		Email:       "billing@opsdesk.example",
		Address:     "1 Harbor St",
	})

	document, err := generator.Generate(testInvoice())
	require.NoError(t, err)
	assert.NotEmpty(t, document)
	// PDF magic bytes
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestGenerateWithoutRate(t *testing.T) {
	generator := NewInvoiceGenerator(BusinessInfo{Name: "Opsdesk LLC"})

	invoice := testInvoice()
	invoice.ProjectHourly = nil

	document, err := generator.Generate(invoice)
	require.NoError(t, err)
	assert.NotEmpty(t, document)
}
