package engine

import (
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"github.com/quantfold/pinebt/internal/types"
)

// BacktestState is the per-run position ledger: a single-asset, long-only
// trade executor with equity and drawdown tracking. A fresh state is created
// at run start and discarded at run end; nothing is shared across runs, which
// is what makes concurrent independent runs safe without locking.
type BacktestState struct {
	cash       float64
	sharesHeld int64
	entryPrice float64

	peakEquity  float64
	maxDrawdown float64

	winningTrades int
	losingTrades  int
	totalProfit   float64
	totalLoss     float64

	trades []types.Trade
}

// NewBacktestState creates a ledger holding the initial capital in cash.
func NewBacktestState(initialCapital float64) *BacktestState {
	return &BacktestState{
		cash:       initialCapital,
		peakEquity: initialCapital,
		trades:     make([]types.Trade, 0),
	}
}

// ExecuteBuy opens the long position at the bar's close, spending as much
// cash as whole units allow. When the cash cannot buy even one unit the buy
// is silently skipped; insufficient capital is a policy no-op, not an error.
// Returns the recorded trade and whether one was recorded.
func (s *BacktestState) ExecuteBuy(bar types.PriceBar) (types.Trade, bool) {
	if s.sharesHeld > 0 {
		return types.Trade{}, false
	}

	quantity := int64(s.cash / bar.Close)
	if quantity <= 0 {
		return types.Trade{}, false
	}

	s.sharesHeld = quantity
	s.entryPrice = bar.Close
	s.cash -= float64(quantity) * bar.Close

	trade := types.Trade{
		Timestamp: bar.Timestamp,
		Side:      types.TradeSideBuy,
		Price:     bar.Close,
		Quantity:  quantity,
	}
	s.trades = append(s.trades, trade)

	return trade, true
}

// ExecuteSell liquidates the entire position at the bar's close and realizes
// the pnl against the entry price recorded on the matching buy. Partial
// closes do not exist in this model.
func (s *BacktestState) ExecuteSell(bar types.PriceBar) (types.Trade, bool) {
	if s.sharesHeld == 0 {
		return types.Trade{}, false
	}

	quantity := s.sharesHeld

	// Realize pnl with decimal arithmetic to keep the accumulators exact.
	qtyDec := decimal.NewFromInt(quantity)
	sellDec := qtyDec.Mul(decimal.NewFromFloat(bar.Close))
	entryDec := qtyDec.Mul(decimal.NewFromFloat(s.entryPrice))
	pnl, _ := sellDec.Sub(entryDec).Float64()

	s.cash += float64(quantity) * bar.Close
	s.sharesHeld = 0
	s.entryPrice = 0

	if pnl > 0 {
		s.winningTrades++
		s.totalProfit += pnl
	} else {
		s.losingTrades++
		s.totalLoss += -pnl
	}

	trade := types.Trade{
		Timestamp: bar.Timestamp,
		Side:      types.TradeSideSell,
		Price:     bar.Close,
		Quantity:  quantity,
		PnL:       optional.Some(pnl),
	}
	s.trades = append(s.trades, trade)

	return trade, true
}

// MarkToMarket updates the running peak equity and maximum drawdown after a
// bar, whether or not a trade happened. Peak equity is monotonically
// non-decreasing. Returns the equity at the bar's close.
func (s *BacktestState) MarkToMarket(bar types.PriceBar) float64 {
	equity := s.Equity(bar.Close)

	if equity > s.peakEquity {
		s.peakEquity = equity
	}

	if drawdown := (s.peakEquity - equity) / s.peakEquity; drawdown > s.maxDrawdown {
		s.maxDrawdown = drawdown
	}

	return equity
}

// Equity is cash plus the position marked at the given price.
func (s *BacktestState) Equity(price float64) float64 {
	return s.cash + float64(s.sharesHeld)*price
}

// PositionOpen reports whether the single long position is currently held.
func (s *BacktestState) PositionOpen() bool {
	return s.sharesHeld > 0
}

// Trades returns the append-only trade sequence recorded so far.
func (s *BacktestState) Trades() []types.Trade {
	return s.trades
}

// MaxDrawdown returns the running maximum fractional drawdown.
func (s *BacktestState) MaxDrawdown() float64 {
	return s.maxDrawdown
}
