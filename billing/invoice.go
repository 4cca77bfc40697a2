package billing

import (
	"fmt"
	"time"
)

// DueDays is the payment term applied to every invoice.
const DueDays = 14

// LineItem is a manually entered invoice position. Total is persisted
// alongside the inputs so published invoices keep the figures they were
// issued with.
type LineItem struct {
	Description string  `json:"description"`
	Hourly      bool    `json:"hourly"`
	Rate        float64 `json:"rate"`
	Multiplier  float64 `json:"multiplier"`
	Total       float64 `json:"total"`
}

// Amount recomputes rate × multiplier.
func (li LineItem) Amount() float64 {
	return li.Rate * li.Multiplier
}

// LineItemsTotal sums rate × multiplier over all items.
func LineItemsTotal(items []LineItem) float64 {
	var sum float64
	for _, li := range items {
		sum += li.Amount()
	}
	return sum
}

// Period is the calendar window spanned by an invoice's included entries.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodOf derives the billing period from entry start times: the earliest
// start floored to 00:00:00 and the latest start ceiled to 23:59:59 of their
// calendar days. ok is false for an empty selection.
func PeriodOf(starts []time.Time) (p Period, ok bool) {
	if len(starts) == 0 {
		return Period{}, false
	}
	earliest, latest := starts[0], starts[0]
	for _, t := range starts[1:] {
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}
	return Period{Start: DayFloor(earliest), End: DayCeil(latest)}, true
}

// Merge widens p to cover other.
func (p Period) Merge(other Period) Period {
	merged := p
	if other.Start.Before(p.Start) {
		merged.Start = other.Start
	}
	if other.End.After(p.End) {
		merged.End = other.End
	}
	return merged
}

// DueDate returns the payment deadline for an invoice date: 14 calendar days
// later, at the end of that day.
func DueDate(invoiceDate time.Time) time.Time {
	return DayCeil(invoiceDate.AddDate(0, 0, DueDays))
}

// InvoiceNumber derives the human-readable invoice identifier
// {client_id}-{MMDDYYYY} from the invoice date.
func InvoiceNumber(clientID string, invoiceDate time.Time) string {
	return fmt.Sprintf("%s-%02d%02d%d", clientID, invoiceDate.Month(), invoiceDate.Day(), invoiceDate.Year())
}

// Totals carries every additive term of an invoice. Unset terms stay 0;
// adjustments carry their own sign and fees always subtract.
type Totals struct {
	TimeSeconds  int64
	HourlyRate   *float64
	LineItems    float64
	ProjectCosts float64
	Adjustments  float64
	Fees         float64
}

// TimeAmount is the time-based charge of the invoice. ok is false when no
// hourly rate applies, in which case the subtotal carries line items only.
func (t Totals) TimeAmount() (float64, bool) {
	return TimeAmount(t.TimeSeconds, t.HourlyRate)
}

// Subtotal is time amount plus line items.
func (t Totals) Subtotal() float64 {
	amount, _ := t.TimeAmount()
	return amount + t.LineItems
}

// GrandTotal is subtotal + project costs + adjustments - fees.
func (t Totals) GrandTotal() float64 {
	return t.Subtotal() + t.ProjectCosts + t.Adjustments - t.Fees
}
