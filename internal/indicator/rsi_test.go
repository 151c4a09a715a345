package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

// With fewer than period+1 observations the indicator has no history and
// reports the neutral value.
func (suite *RSITestSuite) TestInsufficientDataReturnsNeutral() {
	closes := []float64{100, 101, 102}
	suite.Equal(50.0, RSI(closes, DefaultRSIPeriod))
}

// A monotonically rising series has zero average loss and saturates at 100.
func (suite *RSITestSuite) TestAllGainsReturnsHundred() {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	suite.Equal(100.0, RSI(closes, DefaultRSIPeriod))
}

// A monotonically falling series has zero average gain and reports 0.
func (suite *RSITestSuite) TestAllLossesReturnsZero() {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	suite.Equal(0.0, RSI(closes, DefaultRSIPeriod))
}

// Equal total gains and losses over the trailing period balance out at 50.
func (suite *RSITestSuite) TestBalancedSeries() {
	// 7 gains of +2 and 7 losses of -2 over 14 changes.
	closes := []float64{100, 102, 104, 106, 108, 110, 112, 114, 112, 110, 108, 106, 104, 102, 100}
	suite.InDelta(50.0, RSI(closes, DefaultRSIPeriod), 1e-9)
}

// Only the trailing period of changes contributes to the averages.
func (suite *RSITestSuite) TestUsesTrailingPeriodOnly() {
	// One large early loss outside the trailing 3 changes, then gains only.
	closes := []float64{100, 50, 52, 54, 56}
	suite.Equal(100.0, RSI(closes, 3))
}
