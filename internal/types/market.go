package types

import "time"

// PriceBar is a single OHLCV observation for a symbol at a point in time.
// Bars are ordered ascending by timestamp with unique timestamps per symbol;
// ordering is enforced by the data layer, not by the engine.
type PriceBar struct {
	// Timestamp is the bar time in epoch milliseconds.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
	// Open is the opening price of the bar.
	Open float64 `json:"open" yaml:"open"`
	// High is the highest price of the bar.
	High float64 `json:"high" yaml:"high"`
	// Low is the lowest price of the bar.
	Low float64 `json:"low" yaml:"low"`
	// Close is the closing price of the bar.
	Close float64 `json:"close" yaml:"close"`
	// Volume is the traded volume of the bar.
	Volume int64 `json:"volume" yaml:"volume"`
}

// Time returns the bar timestamp as a time.Time in UTC.
func (b PriceBar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}
