// Package store persists strategies, price series and backtest results in
// DuckDB. It implements the collaborator contracts the engine core depends
// on; the engine itself never touches storage.
package store

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantfold/pinebt/internal/types"
)

// StrategyRecord is a stored Pine strategy definition. The strategy family
// is derived at run time by the classifier and never persisted.
type StrategyRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PineScript  string    `json:"pineScript"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StrategyUpdate is a partial patch of a stored strategy. Only set fields
// are applied; absent fields keep their stored values.
type StrategyUpdate struct {
	Name        optional.Option[string] `json:"name,omitempty"`
	PineScript  optional.Option[string] `json:"pineScript,omitempty"`
	Description optional.Option[string] `json:"description,omitempty"`
	IsPublic    optional.Option[bool]   `json:"isPublic,omitempty"`
}

// BacktestRecord is a persisted backtest run, scoped to a strategy, symbol,
// date range and initial capital.
type BacktestRecord struct {
	ID             string               `json:"id"`
	StrategyID     string               `json:"strategyId"`
	Symbol         string               `json:"symbol"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        time.Time            `json:"endDate"`
	InitialCapital float64              `json:"initialCapital"`
	Result         types.BacktestResult `json:"result"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// StrategyStore resolves and manages stored strategies.
type StrategyStore interface {
	// CreateStrategy stores a new strategy and returns it with its assigned ID.
	CreateStrategy(record StrategyRecord) (StrategyRecord, error)
	// GetStrategy resolves a strategy by ID. Fails with a not-found error
	// when absent.
	GetStrategy(id string) (StrategyRecord, error)
	// ListStrategies returns all stored strategies ordered by name.
	ListStrategies() ([]StrategyRecord, error)
	// UpdateStrategy applies a partial patch to a strategy and returns the
	// updated record. Fails with a not-found error when absent.
	UpdateStrategy(id string, update StrategyUpdate) (StrategyRecord, error)
	// DeleteStrategy removes a strategy by ID. Fails with a not-found error
	// when absent.
	DeleteStrategy(id string) error
}

// PriceSeriesStore reads and writes historical OHLCV bars.
type PriceSeriesStore interface {
	// SaveBars bulk-inserts bars for a symbol.
	SaveBars(symbol string, bars []types.PriceBar) error
	// FetchBars returns the bars for symbol within [start, end], ordered
	// ascending by timestamp. Returns an empty slice when no data exists for
	// the window; callers treat empty as invalid input for a run.
	FetchBars(symbol string, start, end time.Time) ([]types.PriceBar, error)
}

// ResultStore persists completed backtest runs.
type ResultStore interface {
	// SaveResult persists a run and returns its assigned identifier.
	SaveResult(record BacktestRecord) (string, error)
	// GetResult resolves a persisted run by ID. Fails with a not-found error
	// when absent.
	GetResult(id string) (BacktestRecord, error)
}
