package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rate(v float64) *float64 { return &v }

func TestResolveRateFallbackOrder(t *testing.T) {
	projectRate := rate(150)
	clientRate := rate(100)

	assert.Equal(t, projectRate, ResolveRate(projectRate, clientRate))
	assert.Equal(t, clientRate, ResolveRate(nil, clientRate))
	assert.Nil(t, ResolveRate(nil, nil))
}

func TestTimeAmountWithoutRateIsNotApplicable(t *testing.T) {
	amount, ok := TimeAmount(7200, nil)

	// no rate means no charge computed, not a zero charge
	assert.False(t, ok)
	assert.Equal(t, float64(0), amount)
}

func TestTimeAmount(t *testing.T) {
	amount, ok := TimeAmount(5400, rate(100))

	assert.True(t, ok)
	assert.InDelta(t, 150.0, amount, 1e-9)
}

func TestLineItemsTotal(t *testing.T) {
	items := []LineItem{
		{Description: "design", Hourly: true, Rate: 80, Multiplier: 1.5},
		{Description: "hosting", Hourly: false, Rate: 25, Multiplier: 2},
	}

	assert.InDelta(t, 170.0, LineItemsTotal(items), 1e-9)
}

func TestGrandTotal(t *testing.T) {
	// time amount $500, line items $120, costs $50, adjustments -$20, fees $10
	totals := Totals{
		TimeSeconds:  18000, // 5h
		HourlyRate:   rate(100),
		LineItems:    120,
		ProjectCosts: 50,
		Adjustments:  -20,
		Fees:         10,
	}

	assert.InDelta(t, 620.0, totals.Subtotal(), 1e-9)
	assert.InDelta(t, 640.0, totals.GrandTotal(), 1e-9)
}

func TestGrandTotalDefaultsToZeroTerms(t *testing.T) {
	totals := Totals{TimeSeconds: 3600, HourlyRate: rate(75)}

	assert.InDelta(t, 75.0, totals.GrandTotal(), 1e-9)
}

func TestPeriodOf(t *testing.T) {
	starts := []time.Time{
		time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC),
	}

	p, ok := PeriodOf(starts)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, 9, p.End.Day())
	assert.Equal(t, 23, p.End.Hour())
}

func TestPeriodOfEmptySelection(t *testing.T) {
	_, ok := PeriodOf(nil)

	assert.False(t, ok)
}

func TestPeriodMerge(t *testing.T) {
	existing := Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC),
	}
	incoming := Period{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC),
	}

	merged := existing.Merge(incoming)

	assert.Equal(t, existing.Start, merged.Start)
	assert.Equal(t, incoming.End, merged.End)
}

func TestDueDate(t *testing.T) {
	invoiceDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	due := DueDate(invoiceDate)

	assert.Equal(t, 15, due.Day())
	assert.Equal(t, time.June, due.Month())
	assert.Equal(t, 23, due.Hour())
}

func TestInvoiceNumber(t *testing.T) {
	invoiceDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "c0ffee-06012024", InvoiceNumber("c0ffee", invoiceDate))
}
