package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/quantfold/pinebt/internal/indicator"
	"github.com/quantfold/pinebt/internal/types"
)

// MACrossover implements the moving average crossover family: buy when the
// fast SMA crosses above the slow SMA, sell when it crosses back below.
type MACrossover struct {
	fastLength int
	slowLength int
}

// NewMACrossover creates the crossover procedure with the standard 10/20
// lengths.
func NewMACrossover() *MACrossover {
	return &MACrossover{
		fastLength: 10,
		slowLength: 20,
	}
}

// Family implements Procedure.
func (m *MACrossover) Family() Family {
	return FamilyMovingAverageCrossover
}

// Evaluate implements Procedure. A crossover is a sign change of fast-slow
// across consecutive bars, so both the current and the previous windows are
// evaluated.
func (m *MACrossover) Evaluate(bars []types.PriceBar, i int, positionOpen bool) Decision {
	fast := indicator.SMA(closesOf(bars, i-m.fastLength+1, i+1))
	slow := indicator.SMA(closesOf(bars, i-m.slowLength+1, i+1))
	prevFast := indicator.SMA(closesOf(bars, i-m.fastLength, i))
	prevSlow := indicator.SMA(closesOf(bars, i-m.slowLength, i))

	return Decision{
		Buy:  !positionOpen && prevFast <= prevSlow && fast > slow,
		Sell: positionOpen && prevFast >= prevSlow && fast < slow,
		Signals: []types.Signal{
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindFastMA,
				Value:     fast,
				Color:     optional.Some("blue"),
			},
			{
				Timestamp: bars[i].Timestamp,
				Kind:      types.SignalKindSlowMA,
				Value:     slow,
				Color:     optional.Some("red"),
			},
		},
	}
}
