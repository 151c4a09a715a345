// Package engine implements the bar-by-bar backtest loop: it classifies the
// strategy once, replays the price series through the family's decision
// procedure, executes simulated trades against the position ledger and
// aggregates end-of-run statistics. A run is a pure, deterministic function
// of its three inputs; it performs no I/O and keeps no state across
// invocations, so distinct runs may execute concurrently without
// coordination.
package engine

import (
	"go.uber.org/zap"

	"github.com/quantfold/pinebt/internal/logger"
	"github.com/quantfold/pinebt/internal/strategy"
	"github.com/quantfold/pinebt/internal/types"
	"github.com/quantfold/pinebt/pkg/errors"
)

// BacktestEngineV1 replays a historical price series against a Pine strategy
// source.
type BacktestEngineV1 struct {
	log *logger.Logger
}

// NewBacktestEngineV1 creates an engine that logs through the given logger.
func NewBacktestEngineV1(log *logger.Logger) *BacktestEngineV1 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestEngineV1{
		log: log,
	}
}

// Run executes a single backtest of strategySource over bars with the given
// starting capital and returns the immutable result. It fails with a
// validation error when the capital is not positive, the series is empty, or
// the series is shorter than the warm-up offset. A series of exactly the
// warm-up length is a valid run that yields zero trades and zero signals, as
// is a strategy whose source matches no known family.
func (e *BacktestEngineV1) Run(strategySource string, bars []types.PriceBar, initialCapital float64) (types.BacktestResult, error) {
	if initialCapital <= 0 {
		return types.BacktestResult{}, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %f", initialCapital)
	}

	if len(bars) == 0 {
		return types.BacktestResult{}, errors.New(errors.ErrCodeEmptySeries, "price series is empty")
	}

	if len(bars) < strategy.WarmUpOffset {
		return types.BacktestResult{}, errors.Newf(errors.ErrCodeSeriesTooShort,
			"price series has %d bars, need at least %d for indicator warm-up", len(bars), strategy.WarmUpOffset)
	}

	family := strategy.Classify(strategySource)
	procedure := strategy.NewProcedure(family)

	e.log.Debug("Backtest run started",
		zap.String("family", string(family)),
		zap.Int("bars", len(bars)),
		zap.Float64("initial_capital", initialCapital),
	)

	state := NewBacktestState(initialCapital)
	signals := make([]types.Signal, 0)
	equityCurve := make([]float64, 0, len(bars)-strategy.WarmUpOffset)

	for i := strategy.WarmUpOffset; i < len(bars); i++ {
		bar := bars[i]
		decision := procedure.Evaluate(bars, i, state.PositionOpen())
		signals = append(signals, decision.Signals...)

		if decision.Buy {
			state.ExecuteBuy(bar)
		} else if decision.Sell {
			state.ExecuteSell(bar)
		}

		equityCurve = append(equityCurve, state.MarkToMarket(bar))
	}

	result := types.BacktestResult{
		Metrics: computeMetrics(state, equityCurve, initialCapital),
		Trades:  state.Trades(),
		Signals: signals,
	}

	e.log.Debug("Backtest run finished",
		zap.Int("trades", len(result.Trades)),
		zap.Int("signals", len(result.Signals)),
		zap.Float64("total_return_pct", result.Metrics.TotalReturnPct),
	)

	return result, nil
}
