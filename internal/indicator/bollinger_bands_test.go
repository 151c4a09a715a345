package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BollingerTestSuite struct {
	suite.Suite
}

func TestBollingerSuite(t *testing.T) {
	suite.Run(t, new(BollingerTestSuite))
}

// A flat window has zero deviation, so all three bands collapse onto the
// basis.
func (suite *BollingerTestSuite) TestFlatWindowCollapses() {
	closes := []float64{100, 100, 100, 100, 100}
	bands := Bollinger(closes, 2)

	suite.Equal(100.0, bands.Basis)
	suite.Equal(100.0, bands.Upper)
	suite.Equal(100.0, bands.Lower)
}

// The deviation is the population standard deviation (divide by N).
func (suite *BollingerTestSuite) TestPopulationDeviation() {
	// Mean 3, squared deviations 4+1+0+1+4 = 10, population variance 2.
	closes := []float64{1, 2, 3, 4, 5}
	bands := Bollinger(closes, 1)

	suite.Equal(3.0, bands.Basis)
	suite.InDelta(3.0+1.4142135623730951, bands.Upper, 1e-12)
	suite.InDelta(3.0-1.4142135623730951, bands.Lower, 1e-12)
}

func (suite *BollingerTestSuite) TestMultiplierScalesBands() {
	closes := []float64{1, 2, 3, 4, 5}
	one := Bollinger(closes, 1)
	two := Bollinger(closes, 2)

	suite.InDelta(2*(one.Upper-one.Basis), two.Upper-two.Basis, 1e-12)
	suite.InDelta(2*(one.Basis-one.Lower), two.Basis-two.Lower, 1e-12)
}
