package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageHourlyRate(t *testing.T) {
	rows := []InvoiceFigures{
		{LineItemsTotal: 300, TimeSeconds: 7200, HourlyRate: rate(100)},
		{LineItemsTotal: 100, TimeSeconds: 3600, HourlyRate: rate(150)},
		// no rate set: line items still count, hours do not
		{LineItemsTotal: 50, TimeSeconds: 3600},
	}

	// (300+100+50) / 3h
	assert.InDelta(t, 150.0, AverageHourlyRate(rows), 1e-9)
}

func TestAverageHourlyRateNoBilledHours(t *testing.T) {
	rows := []InvoiceFigures{
		{LineItemsTotal: 500},
		{LineItemsTotal: 100, TimeSeconds: 3600}, // rate missing
	}

	assert.Equal(t, float64(0), AverageHourlyRate(rows))
}
