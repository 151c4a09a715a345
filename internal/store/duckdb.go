package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/quantfold/pinebt/internal/logger"
	"github.com/quantfold/pinebt/internal/types"
	"github.com/quantfold/pinebt/pkg/errors"
)

// DuckDBStore implements StrategyStore, PriceSeriesStore and ResultStore on
// a single DuckDB database. Pass ":memory:" as the path for an ephemeral
// store.
type DuckDBStore struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewDuckDBStore opens the database at path and creates the schema.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open database", err)
	}

	s := &DuckDBStore{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := s.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

// initialize creates the tables for strategies, market data and backtests.
func (s *DuckDBStore) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS strategies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pine_script TEXT NOT NULL,
			description TEXT,
			is_public BOOLEAN,
			created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS market_data (
			symbol TEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume BIGINT,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE TABLE IF NOT EXISTS backtests (
			id TEXT PRIMARY KEY,
			strategy_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			initial_capital DOUBLE,
			total_trades INTEGER,
			winning_trades INTEGER,
			losing_trades INTEGER,
			total_return_pct DOUBLE,
			max_drawdown_pct DOUBLE,
			sharpe_ratio DOUBLE,
			win_rate DOUBLE,
			profit_factor DOUBLE,
			trades_json TEXT,
			signals_json TEXT,
			created_at TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to create schema", err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

// CreateStrategy implements StrategyStore.
func (s *DuckDBStore) CreateStrategy(record StrategyRecord) (StrategyRecord, error) {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	_, err := s.sq.
		Insert("strategies").
		Columns("id", "name", "pine_script", "description", "is_public", "created_at").
		Values(record.ID, record.Name, record.PineScript, record.Description, record.IsPublic, record.CreatedAt).
		RunWith(s.db).
		Exec()
	if err != nil {
		return StrategyRecord{}, errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert strategy", err)
	}

	s.log.Debug("Strategy created",
		zap.String("id", record.ID),
		zap.String("name", record.Name),
	)

	return record, nil
}

// GetStrategy implements StrategyStore.
func (s *DuckDBStore) GetStrategy(id string) (StrategyRecord, error) {
	row := s.sq.
		Select("id", "name", "pine_script", "description", "is_public", "created_at").
		From("strategies").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRow()

	var record StrategyRecord

	err := row.Scan(&record.ID, &record.Name, &record.PineScript, &record.Description, &record.IsPublic, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return StrategyRecord{}, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", id)
	}

	if err != nil {
		return StrategyRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query strategy", err)
	}

	return record, nil
}

// ListStrategies implements StrategyStore.
func (s *DuckDBStore) ListStrategies() ([]StrategyRecord, error) {
	rows, err := s.sq.
		Select("id", "name", "pine_script", "description", "is_public", "created_at").
		From("strategies").
		OrderBy("name").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list strategies", err)
	}
	defer rows.Close()

	records := make([]StrategyRecord, 0)

	for rows.Next() {
		var record StrategyRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.PineScript, &record.Description, &record.IsPublic, &record.CreatedAt); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan strategy", err)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// UpdateStrategy implements StrategyStore. Only set fields are written; an
// empty patch is a read.
func (s *DuckDBStore) UpdateStrategy(id string, update StrategyUpdate) (StrategyRecord, error) {
	assignments := map[string]any{}

	if update.Name.IsSome() {
		assignments["name"] = update.Name.Unwrap()
	}

	if update.PineScript.IsSome() {
		assignments["pine_script"] = update.PineScript.Unwrap()
	}

	if update.Description.IsSome() {
		assignments["description"] = update.Description.Unwrap()
	}

	if update.IsPublic.IsSome() {
		assignments["is_public"] = update.IsPublic.Unwrap()
	}

	if len(assignments) > 0 {
		result, err := s.sq.
			Update("strategies").
			SetMap(assignments).
			Where(squirrel.Eq{"id": id}).
			RunWith(s.db).
			Exec()
		if err != nil {
			return StrategyRecord{}, errors.Wrap(errors.ErrCodeWriteFailed, "failed to update strategy", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return StrategyRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read affected rows", err)
		}

		if affected == 0 {
			return StrategyRecord{}, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", id)
		}

		s.log.Debug("Strategy updated",
			zap.String("id", id),
			zap.Int("fields", len(assignments)),
		)
	}

	return s.GetStrategy(id)
}

// DeleteStrategy implements StrategyStore.
func (s *DuckDBStore) DeleteStrategy(id string) error {
	result, err := s.sq.
		Delete("strategies").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to delete strategy", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to read affected rows", err)
	}

	if affected == 0 {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", id)
	}

	return nil
}

// SaveBars implements PriceSeriesStore. Bars are written inside a single
// transaction with a prepared statement. A bar already stored for the same
// symbol and timestamp is left untouched, so re-saving an identical series
// is a no-op.
func (s *DuckDBStore) SaveBars(symbol string, bars []types.PriceBar) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO market_data (symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare insert", err)
	}

	for _, bar := range bars {
		if _, err := stmt.Exec(symbol, bar.Timestamp, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			stmt.Close()
			tx.Rollback()

			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to insert bar for %s at %d", symbol, bar.Timestamp)
		}
	}

	stmt.Close()

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit bars", err)
	}

	s.log.Debug("Bars saved",
		zap.String("symbol", symbol),
		zap.Int("count", len(bars)),
	)

	return nil
}

// FetchBars implements PriceSeriesStore.
func (s *DuckDBStore) FetchBars(symbol string, start, end time.Time) ([]types.PriceBar, error) {
	rows, err := s.sq.
		Select("timestamp", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		Where(squirrel.GtOrEq{"timestamp": start.UnixMilli()}).
		Where(squirrel.LtOrEq{"timestamp": end.UnixMilli()}).
		OrderBy("timestamp ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	bars := make([]types.PriceBar, 0)

	for rows.Next() {
		var bar types.PriceBar
		if err := rows.Scan(&bar.Timestamp, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bars = append(bars, bar)
	}

	return bars, rows.Err()
}

// SaveResult implements ResultStore. Trades and signals are stored as JSON
// alongside the flattened metrics columns.
func (s *DuckDBStore) SaveResult(record BacktestRecord) (string, error) {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	tradesJSON, err := json.Marshal(record.Result.Trades)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to marshal trades", err)
	}

	signalsJSON, err := json.Marshal(record.Result.Signals)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to marshal signals", err)
	}

	metrics := record.Result.Metrics

	_, err = s.sq.
		Insert("backtests").
		Columns(
			"id", "strategy_id", "symbol", "start_date", "end_date", "initial_capital",
			"total_trades", "winning_trades", "losing_trades",
			"total_return_pct", "max_drawdown_pct", "sharpe_ratio", "win_rate", "profit_factor",
			"trades_json", "signals_json", "created_at",
		).
		Values(
			record.ID, record.StrategyID, record.Symbol, record.StartDate, record.EndDate, record.InitialCapital,
			metrics.TotalTrades, metrics.WinningTrades, metrics.LosingTrades,
			metrics.TotalReturnPct, metrics.MaxDrawdownPct, metrics.SharpeRatio, metrics.WinRate, metrics.ProfitFactor,
			string(tradesJSON), string(signalsJSON), record.CreatedAt,
		).
		RunWith(s.db).
		Exec()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert backtest", err)
	}

	s.log.Debug("Backtest result saved",
		zap.String("id", record.ID),
		zap.String("symbol", record.Symbol),
	)

	return record.ID, nil
}

// GetResult implements ResultStore.
func (s *DuckDBStore) GetResult(id string) (BacktestRecord, error) {
	row := s.sq.
		Select(
			"id", "strategy_id", "symbol", "start_date", "end_date", "initial_capital",
			"total_trades", "winning_trades", "losing_trades",
			"total_return_pct", "max_drawdown_pct", "sharpe_ratio", "win_rate", "profit_factor",
			"trades_json", "signals_json", "created_at",
		).
		From("backtests").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRow()

	var (
		record      BacktestRecord
		tradesJSON  string
		signalsJSON string
	)

	err := row.Scan(
		&record.ID, &record.StrategyID, &record.Symbol, &record.StartDate, &record.EndDate, &record.InitialCapital,
		&record.Result.Metrics.TotalTrades, &record.Result.Metrics.WinningTrades, &record.Result.Metrics.LosingTrades,
		&record.Result.Metrics.TotalReturnPct, &record.Result.Metrics.MaxDrawdownPct, &record.Result.Metrics.SharpeRatio,
		&record.Result.Metrics.WinRate, &record.Result.Metrics.ProfitFactor,
		&tradesJSON, &signalsJSON, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return BacktestRecord{}, errors.Newf(errors.ErrCodeResultNotFound, "backtest %s not found", id)
	}

	if err != nil {
		return BacktestRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query backtest", err)
	}

	if err := json.Unmarshal([]byte(tradesJSON), &record.Result.Trades); err != nil {
		return BacktestRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to unmarshal trades", err)
	}

	if err := json.Unmarshal([]byte(signalsJSON), &record.Result.Signals); err != nil {
		return BacktestRecord{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to unmarshal signals", err)
	}

	return record, nil
}
