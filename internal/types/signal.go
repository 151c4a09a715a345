package types

import "github.com/moznion/go-optional"

// SignalKind identifies which indicator observation a signal carries.
type SignalKind string

const (
	// SignalKindFastMA is the fast simple moving average of the crossover family
	SignalKindFastMA SignalKind = "fast_ma"
	// SignalKindSlowMA is the slow simple moving average of the crossover family
	SignalKindSlowMA SignalKind = "slow_ma"
	// SignalKindRSI is the relative strength index observation
	SignalKindRSI SignalKind = "rsi"
	// SignalKindBBUpper is the upper Bollinger band
	SignalKindBBUpper SignalKind = "bb_upper"
	// SignalKindBBLower is the lower Bollinger band
	SignalKindBBLower SignalKind = "bb_lower"
	// SignalKindBBMiddle is the Bollinger basis
	SignalKindBBMiddle SignalKind = "bb_middle"
)

// Signal is a single per-bar indicator observation emitted during a run.
// Signals are append-only and ordered by generation time.
type Signal struct {
	// Timestamp is the bar time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Kind is the indicator tag of the observation.
	Kind SignalKind `json:"type"`
	// Value is the indicator value at the bar.
	Value float64 `json:"value"`
	// Color is an optional rendering hint for chart overlays.
	Color optional.Option[string] `json:"color,omitempty"`
}
