package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/quantfold/pinebt/internal/indicator"
	"github.com/quantfold/pinebt/internal/types"
)

// RSIReversal implements the RSI oversold/overbought family: buy when RSI
// drops below the oversold level, sell when it rises above the overbought
// level.
type RSIReversal struct {
	period     int
	oversold   float64
	overbought float64
}

// NewRSIReversal creates the RSI procedure with the standard 14-period
// lookback and 30/70 levels.
func NewRSIReversal() *RSIReversal {
	return &RSIReversal{
		period:     indicator.DefaultRSIPeriod,
		oversold:   30,
		overbought: 70,
	}
}

// Family implements Procedure.
func (r *RSIReversal) Family() Family {
	return FamilyRSIOversoldOverbought
}

// Evaluate implements Procedure. The RSI window holds at most period+1
// trailing closes; near the start of the series it may be shorter, in which
// case the indicator reports its neutral value.
func (r *RSIReversal) Evaluate(bars []types.PriceBar, i int, positionOpen bool) Decision {
	from := i - r.period
	if from < 0 {
		from = 0
	}

	rsi := indicator.RSI(closesOf(bars, from, i+1), r.period)

	return Decision{
		Buy:  !positionOpen && rsi < r.oversold,
		Sell: positionOpen && rsi > r.overbought,
		Signals: []types.Signal{
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindRSI,
				Value:     rsi,
				Color:     optional.Some("purple"),
			},
		},
	}
}
