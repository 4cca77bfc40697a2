package billing

// ResolveRate picks the hourly rate that applies to a billing scope: the
// project's own rate when set, otherwise the client's default billable rate,
// otherwise nil. Callers must treat nil as "not applicable", not as zero.
func ResolveRate(projectRate, clientRate *float64) *float64 {
	if projectRate != nil {
		return projectRate
	}
	return clientRate
}

// TimeAmount converts tracked seconds into a charge at the given hourly rate.
// ok is false when no rate applies.
func TimeAmount(seconds int64, rate *float64) (amount float64, ok bool) {
	if rate == nil {
		return 0, false
	}
	return float64(seconds) / 3600 * *rate, true
}
