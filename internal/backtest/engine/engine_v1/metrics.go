package engine

import (
	"math"

	"github.com/quantfold/pinebt/internal/types"
)

// profitFactorCap is reported when a run realized profits but no losses.
const profitFactorCap = 999

// roundTwo rounds to two decimals, half away from zero, which is what
// math.Round does. Deterministic rounding keeps results comparable across
// runs and platforms.
func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

// computeMetrics aggregates the end-of-run statistics from the final ledger
// state and the per-bar equity curve recorded during the run.
func computeMetrics(state *BacktestState, equityCurve []float64, initialCapital float64) types.PerformanceMetrics {
	finalEquity := initialCapital
	if len(equityCurve) > 0 {
		finalEquity = equityCurve[len(equityCurve)-1]
	}

	totalTrades := state.winningTrades + state.losingTrades

	winRate := 0.0
	if totalTrades > 0 {
		winRate = float64(state.winningTrades) / float64(totalTrades)
	}

	profitFactor := 0.0

	switch {
	case state.totalLoss > 0:
		profitFactor = state.totalProfit / state.totalLoss
	case state.totalProfit > 0:
		profitFactor = profitFactorCap
	}

	return types.PerformanceMetrics{
		TotalTrades:    totalTrades,
		WinningTrades:  state.winningTrades,
		LosingTrades:   state.losingTrades,
		TotalReturnPct: roundTwo((finalEquity - initialCapital) / initialCapital * 100),
		MaxDrawdownPct: roundTwo(state.maxDrawdown * 100),
		SharpeRatio:    roundTwo(sharpeRatio(equityCurve)),
		WinRate:        roundTwo(winRate * 100),
		ProfitFactor:   roundTwo(profitFactor),
	}
}

// sharpeRatio is the mean over the population standard deviation of the
// sequential per-bar equity returns, with a zero risk-free rate. A flat
// equity curve has zero deviation and reports zero.
func sharpeRatio(equityCurve []float64) float64 {
	if len(equityCurve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(equityCurve)-1)
	for i := 1; i < len(equityCurve); i++ {
		returns = append(returns, (equityCurve[i]-equityCurve[i-1])/equityCurve[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}

	variance /= float64(len(returns))

	stdev := math.Sqrt(variance)
	if stdev == 0 {
		return 0
	}

	return mean / stdev
}
