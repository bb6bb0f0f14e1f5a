package analytics

import "math"

// DefaultBinCount is the fixed number of bins used for peer distributions.
const DefaultBinCount = 10

// HistogramBin is one contiguous slice of a peer distribution.
type HistogramBin struct {
	// BinStart is the inclusive lower edge of the bin.
	BinStart float64
	// Count is the number of peer values that fall in the bin.
	Count int
	// IsUserBin marks the bin holding the current user's value.
	IsUserBin bool
}

// BuildHistogram bins data into binCount equal-width bins spanning
// [min(data), max(data)] and flags the bin containing userValue.
//
// When every value in data is identical the bin width would be zero; in
// that case a single bin holding all of data is returned. Empty data
// returns an empty slice.
func BuildHistogram(data []float64, userValue float64, binCount int) []HistogramBin {
	if len(data) == 0 || binCount <= 0 {
		return nil
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		// Degenerate single-valued population.
		return []HistogramBin{{
			BinStart:  lo,
			Count:     len(data),
			IsUserBin: userValue == lo,
		}}
	}

	binWidth := (hi - lo) / float64(binCount)
	bins := make([]HistogramBin, binCount)
	for i := range bins {
		bins[i].BinStart = lo + float64(i)*binWidth
	}

	for _, v := range data {
		bins[binIndex(v, lo, binWidth, binCount)].Count++
	}

	userIdx := int(math.Floor((userValue - lo) / binWidth))
	if userIdx >= 0 && userIdx < binCount {
		bins[userIdx].IsUserBin = true
	} else if userIdx == binCount && userValue == hi {
		// The maximum lands on the upper edge of the last bin.
		bins[binCount-1].IsUserBin = true
	}

	return bins
}

// binIndex maps a datum to its bin, clamped so the maximum value falls in
// the last bin instead of one past it.
func binIndex(v, lo, binWidth float64, binCount int) int {
	idx := int(math.Floor((v - lo) / binWidth))
	if idx < 0 {
		return 0
	}
	if idx >= binCount {
		return binCount - 1
	}
	return idx
}
