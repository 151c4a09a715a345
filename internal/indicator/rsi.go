package indicator

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes the Relative Strength Index over the supplied closing prices.
// The window holds at most period+1 closes; with fewer observations the
// indicator lacks history and returns the neutral value 50. The value is the
// ratio of average gain to average loss over the trailing period, mapped to
// [0, 100]. An average loss of exactly zero maps to 100.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 50
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	// Average the trailing period of gains and losses.
	avgGain := 0.0
	avgLoss := 0.0

	for i := len(gains) - period; i < len(gains); i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
