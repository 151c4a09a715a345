package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestMeanOfWindow() {
	suite.Equal(20.0, SMA([]float64{10, 20, 30}))
	suite.Equal(100.0, SMA([]float64{100}))
}

func (suite *SMATestSuite) TestFlatWindow() {
	suite.Equal(50.0, SMA([]float64{50, 50, 50, 50}))
}

func (suite *SMATestSuite) TestEmptyWindow() {
	suite.Equal(0.0, SMA(nil))
	suite.Equal(0.0, SMA([]float64{}))
}
