package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceMetrics are the end-of-run statistics of a backtest.
// Percent-scaled values are rounded to two decimals, half away from zero.
type PerformanceMetrics struct {
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades" json:"totalTrades"`
	// Count of closed trades with positive realized pnl.
	WinningTrades int `yaml:"winning_trades" json:"winningTrades"`
	// Count of closed trades with zero or negative realized pnl.
	LosingTrades int `yaml:"losing_trades" json:"losingTrades"`
	// Total return over initial capital, in percent.
	TotalReturnPct float64 `yaml:"total_return_pct" json:"totalReturn"`
	// Maximum peak-to-trough equity decline, in percent.
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct" json:"maxDrawdown"`
	// Ratio of mean to standard deviation of per-bar equity returns.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpeRatio"`
	// Share of winning trades among closed trades, in percent.
	WinRate float64 `yaml:"win_rate" json:"winRate"`
	// Ratio of gross winning pnl to gross losing pnl. 999 when there are
	// profits but no losses, 0 when there are no profits at all.
	ProfitFactor float64 `yaml:"profit_factor" json:"profitFactor"`
}

// BacktestResult is the immutable outcome of a single backtest run.
type BacktestResult struct {
	Metrics PerformanceMetrics `yaml:"metrics" json:"results"`
	Trades  []Trade            `yaml:"-" json:"trades"`
	Signals []Signal           `yaml:"-" json:"signals"`
}

// RunSummary is the YAML-serializable summary of a persisted backtest run.
type RunSummary struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Symbol of the backtested instrument.
	Symbol string `yaml:"symbol"`
	// StrategyName is the human-readable name of the strategy.
	StrategyName string `yaml:"strategy_name"`
	// InitialCapital is the starting capital of the run.
	InitialCapital float64 `yaml:"initial_capital"`
	// Metrics are the aggregated run statistics.
	Metrics PerformanceMetrics `yaml:"metrics"`
	// NumberOfSignals is the count of indicator observations emitted.
	NumberOfSignals int `yaml:"number_of_signals"`
}

// WriteRunSummary marshals the summary to YAML and writes it to path.
func WriteRunSummary(path string, summary RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summary to file: %w", err)
	}

	return nil
}
