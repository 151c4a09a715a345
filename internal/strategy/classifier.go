// Package strategy classifies Pine strategy source into a closed set of
// strategy families and provides a per-bar decision procedure for each
// family. The classifier deliberately matches fixed marker tokens instead of
// interpreting the script; it is not a Pine language front end, and scripts
// outside the known families produce no signals and no trades.
package strategy

import "strings"

// Family identifies one of the recognized strategy families.
type Family string

const (
	// FamilyMovingAverageCrossover buys when the fast SMA crosses above the slow SMA
	FamilyMovingAverageCrossover Family = "moving_average_crossover"
	// FamilyRSIOversoldOverbought buys oversold and sells overbought RSI levels
	FamilyRSIOversoldOverbought Family = "rsi_oversold_overbought"
	// FamilyBollingerMeanReversion buys the lower band and sells the upper band
	FamilyBollingerMeanReversion Family = "bollinger_mean_reversion"
	// FamilyUnrecognized matches no known markers and never trades
	FamilyUnrecognized Family = "unrecognized"
)

// Classify maps raw strategy source to a Family by first-match priority:
// moving average crossover, then RSI, then Bollinger mean reversion.
// Exactly one family governs a run.
func Classify(source string) Family {
	switch {
	case strings.Contains(source, "ta.sma") && strings.Contains(source, "crossover"):
		return FamilyMovingAverageCrossover
	case strings.Contains(source, "ta.rsi"):
		return FamilyRSIOversoldOverbought
	case strings.Contains(source, "ta.stdev") && strings.Contains(source, "Bollinger"):
		return FamilyBollingerMeanReversion
	default:
		return FamilyUnrecognized
	}
}
