package report

// CalculateGrowthRate returns the period-over-period change in percent. A zero
// base yields 100 when the current value is positive and 0 otherwise; the
// "100% growth from nothing" convention is a deliberate product choice, not a
// divide-by-zero workaround to be swapped out.
func CalculateGrowthRate(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
