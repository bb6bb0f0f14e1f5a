package analytics

// NeutralPercentile is returned when there are no peers to rank against.
const NeutralPercentile = 50

// Percentile ranks value within a peer distribution sorted ascending.
// It is the share of peers strictly below the first peer >= value, floored
// to an integer in [0, 100]. A value above every peer ranks 100.
//
// An empty distribution returns NeutralPercentile rather than an undefined
// result.
func Percentile(value float64, sortedAscending []float64) int {
	n := len(sortedAscending)
	if n == 0 {
		return NeutralPercentile
	}
	for i, peer := range sortedAscending {
		if peer >= value {
			return i * 100 / n
		}
	}
	return 100
}

// EfficiencyPercentile ranks a lower-is-better metric, such as the number
// of questions an adaptive session needed to converge.
func EfficiencyPercentile(value float64, sortedAscending []float64) int {
	return 100 - Percentile(value, sortedAscending)
}
