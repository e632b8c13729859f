// Package volume implements the live volume adjustment policy.
package volume

const (
	// Ratio is the relative step of one adjustment.
	Ratio = 0.1
	// Min is the lowest volume reachable by stepping down.
	Min = 0.05
	// Max is the highest volume reachable by stepping up.
	Max = 3.0
)

// Adjust returns v stepped up or down by one notch. Stepping up divides by
// (1 - Ratio) and stepping down multiplies by it, so the two are not inverses.
func Adjust(v float64, increase bool) float64 {
	if increase {
		return min(v/(1-Ratio), Max)
	}
	return max(v*(1-Ratio), Min)
}

// Percent formats a volume as a whole percentage, e.g. 1.1111 -> 111.
func Percent(v float64) int {
	return int(v*100 + 0.5)
}
