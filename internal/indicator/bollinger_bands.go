package indicator

import "math"

// BollingerBands holds the three band values at a single bar.
type BollingerBands struct {
	// Basis is the arithmetic mean of the window.
	Basis float64
	// Upper is the basis plus multiplier standard deviations.
	Upper float64
	// Lower is the basis minus multiplier standard deviations.
	Lower float64
}

// Bollinger computes Bollinger bands over the supplied closing prices.
// The standard deviation is the population deviation (divide by N), matching
// the Pine ta.stdev default. The caller supplies exactly the N-length window.
func Bollinger(closes []float64, multiplier float64) BollingerBands {
	basis := SMA(closes)

	variance := 0.0
	for _, c := range closes {
		d := c - basis
		variance += d * d
	}

	if len(closes) > 0 {
		variance /= float64(len(closes))
	}

	stdev := math.Sqrt(variance)

	return BollingerBands{
		Basis: basis,
		Upper: basis + multiplier*stdev,
		Lower: basis - multiplier*stdev,
	}
}
