package billing

// InvoiceFigures is the per-invoice slice of the portfolio statistics.
type InvoiceFigures struct {
	LineItemsTotal float64
	TimeSeconds    int64
	HourlyRate     *float64
}

// AverageHourlyRate is the realized rate across a set of invoices: the sum of
// all line-item totals divided by the billed hours of invoices that have both
// an hourly rate and a time sum. No billed hours yields 0, not an error.
func AverageHourlyRate(rows []InvoiceFigures) float64 {
	var lineItems float64
	var seconds int64
	for _, r := range rows {
		lineItems += r.LineItemsTotal
		if r.HourlyRate != nil && r.TimeSeconds > 0 {
			seconds += r.TimeSeconds
		}
	}
	if seconds == 0 {
		return 0
	}
	return lineItems / (float64(seconds) / 3600)
}
