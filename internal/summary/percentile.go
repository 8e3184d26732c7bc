package summary

import (
	"math"
	"sort"
	"strconv"
)

// Percentile computes the p-th percentile of data using the
// nearest-rank method the historical report generator used: sort
// ascending, take index floor(n*p/100 + 0.5) - 1, clamped to the valid
// range. The +0.5 offset is intentional and must not be "fixed" to a
// textbook definition; downstream sheets compare against values
// produced by this exact formula.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	n := len(sorted)
	idx := int(math.Floor(float64(n)*p/100+0.5)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// formatValue renders a float in its shortest decimal form, truncated
// to 8 characters. This is the report's fixed display-width
// convention, not a rounding step.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
