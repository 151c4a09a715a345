package types

import "github.com/moznion/go-optional"

// TradeSide is the direction of a simulated trade.
type TradeSide string

const (
	// TradeSideBuy opens the single long position
	TradeSideBuy TradeSide = "buy"
	// TradeSideSell liquidates the entire open position
	TradeSideSell TradeSide = "sell"
)

// Trade is a simulated execution at a bar's close. Every trade timestamp
// equals some PriceBar timestamp of the input series.
type Trade struct {
	// Timestamp is the bar time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Side is the trade direction.
	Side TradeSide `json:"type"`
	// Price is the execution price, always the bar close.
	Price float64 `json:"price"`
	// Quantity is the number of units traded, always positive.
	Quantity int64 `json:"quantity"`
	// PnL is the realized profit or loss, present only on sell trades.
	PnL optional.Option[float64] `json:"pnl,omitempty"`
}
