package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) TestRoundTwoHalfAwayFromZero() {
	suite.Equal(0.13, roundTwo(0.125))
	suite.Equal(-0.13, roundTwo(-0.125))
	suite.Equal(12.35, roundTwo(12.346))
	suite.Equal(-12.35, roundTwo(-12.346))
	suite.Equal(100.0, roundTwo(100))
}

func (suite *MetricsTestSuite) TestProfitFactorSentinelWhenNoLosses() {
	state := NewBacktestState(10000)
	state.winningTrades = 1
	state.totalProfit = 50

	metrics := computeMetrics(state, []float64{10000, 10050}, 10000)
	suite.Equal(999.0, metrics.ProfitFactor)
}

func (suite *MetricsTestSuite) TestProfitFactorZeroWhenNoProfit() {
	state := NewBacktestState(10000)

	metrics := computeMetrics(state, []float64{10000, 10000}, 10000)
	suite.Equal(0.0, metrics.ProfitFactor)
}

func (suite *MetricsTestSuite) TestProfitFactorRatio() {
	state := NewBacktestState(10000)
	state.winningTrades = 2
	state.losingTrades = 1
	state.totalProfit = 30
	state.totalLoss = 20

	metrics := computeMetrics(state, []float64{10000, 10010}, 10000)
	suite.Equal(1.5, metrics.ProfitFactor)
}

func (suite *MetricsTestSuite) TestWinRate() {
	state := NewBacktestState(10000)
	state.winningTrades = 3
	state.losingTrades = 1

	metrics := computeMetrics(state, []float64{10000}, 10000)
	suite.Equal(75.0, metrics.WinRate)
	suite.Equal(4, metrics.TotalTrades)
}

func (suite *MetricsTestSuite) TestWinRateZeroWithoutClosedTrades() {
	state := NewBacktestState(10000)

	metrics := computeMetrics(state, []float64{10000}, 10000)
	suite.Equal(0.0, metrics.WinRate)
	suite.Equal(0, metrics.TotalTrades)
}

func (suite *MetricsTestSuite) TestTotalReturnFromFinalEquity() {
	state := NewBacktestState(10000)

	metrics := computeMetrics(state, []float64{10000, 12000, 15820}, 10000)
	suite.Equal(58.2, metrics.TotalReturnPct)
}

func (suite *MetricsTestSuite) TestEmptyEquityCurveMeansFlatRun() {
	state := NewBacktestState(10000)

	metrics := computeMetrics(state, nil, 10000)
	suite.Equal(0.0, metrics.TotalReturnPct)
	suite.Equal(0.0, metrics.SharpeRatio)
}

func (suite *MetricsTestSuite) TestSharpeZeroForFlatCurve() {
	suite.Equal(0.0, sharpeRatio([]float64{100, 100, 100}))
}

func (suite *MetricsTestSuite) TestSharpeZeroForConstantReturns() {
	// Identical per-bar returns have zero deviation.
	suite.Equal(0.0, sharpeRatio([]float64{100, 110, 121}))
}

func (suite *MetricsTestSuite) TestSharpeKnownValue() {
	// Returns 0.1 and 0: mean 0.05, population stdev 0.05, ratio 1.
	suite.InDelta(1.0, sharpeRatio([]float64{100, 110, 110}), 1e-9)
}

func (suite *MetricsTestSuite) TestSharpeTooShortCurve() {
	suite.Equal(0.0, sharpeRatio([]float64{100}))
	suite.Equal(0.0, sharpeRatio(nil))
}
