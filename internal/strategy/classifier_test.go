package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClassifierTestSuite struct {
	suite.Suite
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func (suite *ClassifierTestSuite) TestMovingAverageCrossover() {
	source := `fast_ma = ta.sma(close, 10)
if ta.crossover(fast_ma, slow_ma)
    strategy.entry("Long", strategy.long)`
	suite.Equal(FamilyMovingAverageCrossover, Classify(source))
}

func (suite *ClassifierTestSuite) TestSMAWithoutCrossoverIsNotEnough() {
	suite.Equal(FamilyUnrecognized, Classify(`ma = ta.sma(close, 20)`))
}

func (suite *ClassifierTestSuite) TestRSI() {
	suite.Equal(FamilyRSIOversoldOverbought, Classify(`rsi = ta.rsi(close, 14)`))
}

func (suite *ClassifierTestSuite) TestBollinger() {
	source := `// Bollinger Bands
dev = mult * ta.stdev(close, length)`
	suite.Equal(FamilyBollingerMeanReversion, Classify(source))
}

func (suite *ClassifierTestSuite) TestStdevWithoutBollingerMarkerIsNotEnough() {
	suite.Equal(FamilyUnrecognized, Classify(`dev = ta.stdev(close, 20)`))
}

// When markers of several families co-occur, the listed priority order wins:
// crossover first, then RSI, then Bollinger.
func (suite *ClassifierTestSuite) TestPriorityOrder() {
	source := `fast = ta.sma(close, 10) // crossover
rsi = ta.rsi(close, 14)
dev = ta.stdev(close, 20) // Bollinger`
	suite.Equal(FamilyMovingAverageCrossover, Classify(source))

	noMA := `rsi = ta.rsi(close, 14)
dev = ta.stdev(close, 20) // Bollinger`
	suite.Equal(FamilyRSIOversoldOverbought, Classify(noMA))
}

func (suite *ClassifierTestSuite) TestUnrecognized() {
	suite.Equal(FamilyUnrecognized, Classify("buy low, sell high"))
	suite.Equal(FamilyUnrecognized, Classify(""))
}

func (suite *ClassifierTestSuite) TestNewProcedureMatchesFamily() {
	for _, family := range []Family{
		FamilyMovingAverageCrossover,
		FamilyRSIOversoldOverbought,
		FamilyBollingerMeanReversion,
		FamilyUnrecognized,
	} {
		suite.Equal(family, NewProcedure(family).Family())
	}
}
