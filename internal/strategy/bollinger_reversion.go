package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/quantfold/pinebt/internal/indicator"
	"github.com/quantfold/pinebt/internal/types"
)

// BollingerReversion implements the Bollinger mean reversion family: buy when
// the close touches the lower band, sell when it touches the upper band.
type BollingerReversion struct {
	length     int
	multiplier float64
}

// NewBollingerReversion creates the Bollinger procedure with the standard
// 20-bar window and 2x multiplier.
func NewBollingerReversion() *BollingerReversion {
	return &BollingerReversion{
		length:     20,
		multiplier: 2,
	}
}

// Family implements Procedure.
func (b *BollingerReversion) Family() Family {
	return FamilyBollingerMeanReversion
}

// Evaluate implements Procedure.
func (b *BollingerReversion) Evaluate(bars []types.PriceBar, i int, positionOpen bool) Decision {
	bands := indicator.Bollinger(closesOf(bars, i-b.length+1, i+1), b.multiplier)
	close := bars[i].Close

	return Decision{
		Buy:  !positionOpen && close <= bands.Lower,
		Sell: positionOpen && close >= bands.Upper,
		Signals: []types.Signal{
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindBBUpper,
				Value:     bands.Upper,
				Color:     optional.Some("red"),
			},
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindBBLower,
				Value:     bands.Lower,
				Color:     optional.Some("green"),
			},
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindBBMiddle,
				Value:     bands.Basis,
				Color:     optional.Some("orange"),
			},
		},
	}
}
