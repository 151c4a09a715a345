// Package indicator provides pure, stateless technical indicator functions
// over windows of closing prices. Callers supply exactly the window they want
// evaluated; nothing here keeps incremental state, so every call is O(N) over
// the supplied window. That cost is acceptable for offline batch replay.
package indicator

// SMA returns the arithmetic mean of the supplied closing prices.
// The caller supplies exactly the N-length window. Returns 0 for an
// empty window.
func SMA(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range closes {
		sum += c
	}

	return sum / float64(len(closes))
}
