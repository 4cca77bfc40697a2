package service

import (
	"context"

	"github.com/opsdeskhq/opsdesk/billing"
)

// PortfolioStats are the dashboard figures across all invoices.
type PortfolioStats struct {
	InvoiceCount      int     `json:"invoice_count"`
	UnpaidCount       int     `json:"unpaid_count"`
	LineItemsTotal    float64 `json:"line_items_total"`
	TimeAmountTotal   float64 `json:"time_amount_total"`
	TimeSecondsTotal  int64   `json:"time_seconds_total"`
	TimeTotal         string  `json:"time_total"`
	AverageHourlyRate float64 `json:"average_hourly_rate"`
}

func (svc *OpsdeskService) Stats(ctx context.Context) (*PortfolioStats, error) {
	invoices, err := svc.Invoices(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PortfolioStats{InvoiceCount: len(invoices)}
	figures := make([]billing.InvoiceFigures, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if !inv.Paid {
			stats.UnpaidCount++
		}
		stats.LineItemsTotal += inv.LineItemsTotal
		if amount, ok := billing.TimeAmount(inv.TimeEntriesSum, inv.ProjectHourly); ok {
			stats.TimeAmountTotal += amount
			stats.TimeSecondsTotal += inv.TimeEntriesSum
		}
		figures = append(figures, inv.Figures())
	}
	stats.TimeTotal = billing.FormatDuration(stats.TimeSecondsTotal)
	stats.AverageHourlyRate = billing.AverageHourlyRate(figures)
	return stats, nil
}
