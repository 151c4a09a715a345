package strategy

import "github.com/quantfold/pinebt/internal/types"

// WarmUpOffset is the number of leading bars skipped before any procedure is
// evaluated. Bars before the offset lack sufficient indicator history and
// produce no signals and no trade evaluation.
const WarmUpOffset = 20

// Decision is the outcome of evaluating one bar. Buy and Sell are mutually
// exclusive by construction: Buy requires no open position and Sell requires
// an open one.
type Decision struct {
	// Buy indicates the run should open the long position at this bar's close.
	Buy bool
	// Sell indicates the run should liquidate the position at this bar's close.
	Sell bool
	// Signals are the indicator observations emitted at this bar.
	Signals []types.Signal
}

// Procedure is a per-bar decision procedure for one strategy family.
// Evaluate inspects the bar at index i of the series, which is always at or
// past WarmUpOffset, and must not mutate the series.
type Procedure interface {
	// Family returns the family this procedure implements.
	Family() Family
	// Evaluate produces the buy/sell decision and indicator signals for bar i.
	Evaluate(bars []types.PriceBar, i int, positionOpen bool) Decision
}

// NewProcedure returns the decision procedure governing the given family.
// FamilyUnrecognized yields a procedure that never signals and never trades.
func NewProcedure(family Family) Procedure {
	switch family {
	case FamilyMovingAverageCrossover:
		return NewMACrossover()
	case FamilyRSIOversoldOverbought:
		return NewRSIReversal()
	case FamilyBollingerMeanReversion:
		return NewBollingerReversion()
	default:
		return noopProcedure{}
	}
}

// noopProcedure is the FamilyUnrecognized procedure.
type noopProcedure struct{}

func (noopProcedure) Family() Family {
	return FamilyUnrecognized
}

func (noopProcedure) Evaluate(_ []types.PriceBar, _ int, _ bool) Decision {
	return Decision{}
}

// closesOf extracts the closing prices of bars[from:to].
func closesOf(bars []types.PriceBar, from, to int) []float64 {
	window := make([]float64, 0, to-from)
	for _, bar := range bars[from:to] {
		window = append(window, bar.Close)
	}

	return window
}
