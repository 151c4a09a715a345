package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/pinebt/internal/types"
)

type BollingerReversionTestSuite struct {
	suite.Suite
	proc Procedure
}

func TestBollingerReversionSuite(t *testing.T) {
	suite.Run(t, new(BollingerReversionTestSuite))
}

func (suite *BollingerReversionTestSuite) SetupTest() {
	suite.proc = NewBollingerReversion()
}

func (suite *BollingerReversionTestSuite) TestBuysOnDipBelowLowerBand() {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	// A sharp dip lands well below the lower band of the trailing window.
	closes[20] = 90

	bars := barsFromCloses(closes)
	decision := suite.proc.Evaluate(bars, 20, false)

	suite.True(decision.Buy)
	suite.False(decision.Sell)
}

func (suite *BollingerReversionTestSuite) TestSellsOnSpikeAboveUpperBand() {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	closes[20] = 90
	closes[21] = 110

	bars := barsFromCloses(closes)
	decision := suite.proc.Evaluate(bars, 21, true)

	suite.True(decision.Sell)
	suite.False(decision.Buy)
}

func (suite *BollingerReversionTestSuite) TestEmitsThreeBands() {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}

	bars := barsFromCloses(closes)
	decision := suite.proc.Evaluate(bars, 22, false)

	suite.Len(decision.Signals, 3)
	suite.Equal(types.SignalKindBBUpper, decision.Signals[0].Kind)
	suite.Equal(types.SignalKindBBLower, decision.Signals[1].Kind)
	suite.Equal(types.SignalKindBBMiddle, decision.Signals[2].Kind)
	suite.Equal("red", decision.Signals[0].Color.Unwrap())
	suite.Equal("green", decision.Signals[1].Color.Unwrap())
	suite.Equal("orange", decision.Signals[2].Color.Unwrap())
	suite.Greater(decision.Signals[0].Value, decision.Signals[2].Value)
	suite.Less(decision.Signals[1].Value, decision.Signals[2].Value)
}
