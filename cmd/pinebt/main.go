package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantfold/pinebt/internal/api"
	engine "github.com/quantfold/pinebt/internal/backtest/engine/engine_v1"
	"github.com/quantfold/pinebt/internal/logger"
	"github.com/quantfold/pinebt/internal/store"
	"github.com/quantfold/pinebt/internal/types"
)

const dateLayout = "2006-01-02"

func dataFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Usage:   "Path to the DuckDB database file",
		Value:   "pinebt.db",
	}
}

// seedAction generates deterministic sample bars for each symbol and loads
// the built-in demo strategies.
func seedAction(_ context.Context, cmd *cli.Command) error {
	logg, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := store.NewDuckDBStore(cmd.String("data"), logg)
	if err != nil {
		return err
	}
	defer db.Close()

	symbols := cmd.StringSlice("symbol")
	days := int(cmd.Int("days"))
	start := cmd.Timestamp("start")

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("Seeding sample data"),
		progressbar.OptionShowCount(),
	)

	for _, symbol := range symbols {
		bars := store.GenerateSampleBars(symbol, start, days)
		if err := db.SaveBars(symbol, bars); err != nil {
			return err
		}

		if err := bar.Add(1); err != nil {
			return err
		}
	}

	existing, err := db.ListStrategies()
	if err != nil {
		return err
	}

	loaded := make(map[string]bool, len(existing))
	for _, record := range existing {
		loaded[record.Name] = true
	}

	for _, sample := range store.SampleStrategies() {
		// Re-seeding must not duplicate the demo strategies.
		if loaded[sample.Name] {
			continue
		}

		record, err := db.CreateStrategy(sample)
		if err != nil {
			return err
		}

		logg.Info("Sample strategy loaded",
			zap.String("id", record.ID),
			zap.String("name", record.Name),
		)
	}

	return nil
}

// runAction backtests a strategy over stored price data and writes a YAML
// summary of the result.
func runAction(_ context.Context, cmd *cli.Command) error {
	logg, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := store.NewDuckDBStore(cmd.String("data"), logg)
	if err != nil {
		return err
	}
	defer db.Close()

	var (
		source       string
		strategyName string
		strategyID   = cmd.String("strategy-id")
	)

	if strategyFile := cmd.String("strategy-file"); strategyFile != "" {
		content, err := os.ReadFile(strategyFile)
		if err != nil {
			return fmt.Errorf("failed to read strategy file: %w", err)
		}

		source = string(content)
		strategyName = strategyFile
	} else if strategyID != "" {
		record, err := db.GetStrategy(strategyID)
		if err != nil {
			return err
		}

		source = record.PineScript
		strategyName = record.Name
	} else {
		return fmt.Errorf("either --strategy-file or --strategy-id is required")
	}

	symbol := cmd.String("symbol")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	capital := cmd.Float("capital")

	if configPath := cmd.String("config"); configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read engine config: %w", err)
		}

		config, err := engine.ParseConfig(string(content))
		if err != nil {
			return err
		}

		// An explicit --capital flag wins over the config file.
		if !cmd.IsSet("capital") {
			capital = config.InitialCapital
		}
	}

	// Include the whole end day without spilling into the next one.
	bars, err := db.FetchBars(symbol, startDate, endDate.AddDate(0, 0, 1).Add(-time.Millisecond))
	if err != nil {
		return err
	}

	backtester := engine.NewBacktestEngineV1(logg)

	result, err := backtester.Run(source, bars, capital)
	if err != nil {
		return err
	}

	record := store.BacktestRecord{
		StrategyID:     strategyID,
		Symbol:         symbol,
		StartDate:      startDate,
		EndDate:        endDate,
		InitialCapital: capital,
		Result:         result,
	}

	runID, err := db.SaveResult(record)
	if err != nil {
		return err
	}

	summary := types.RunSummary{
		ID:              runID,
		Timestamp:       time.Now().UTC(),
		Symbol:          symbol,
		StrategyName:    strategyName,
		InitialCapital:  capital,
		Metrics:         result.Metrics,
		NumberOfSignals: len(result.Signals),
	}

	if output := cmd.String("output"); output != "" {
		if err := types.WriteRunSummary(output, summary); err != nil {
			return err
		}
	}

	logg.Info("Backtest completed",
		zap.String("run_id", runID),
		zap.Int("total_trades", result.Metrics.TotalTrades),
		zap.Float64("total_return_pct", result.Metrics.TotalReturnPct),
		zap.Float64("max_drawdown_pct", result.Metrics.MaxDrawdownPct),
		zap.Float64("win_rate", result.Metrics.WinRate),
		zap.Float64("profit_factor", result.Metrics.ProfitFactor),
		zap.Float64("sharpe_ratio", result.Metrics.SharpeRatio),
	)

	return nil
}

// serveAction starts the HTTP API.
func serveAction(_ context.Context, cmd *cli.Command) error {
	logg, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := store.NewDuckDBStore(cmd.String("data"), logg)
	if err != nil {
		return err
	}
	defer db.Close()

	server := api.NewServer(db, db, db, logg)

	return server.ListenAndServe(cmd.String("addr"))
}

// schemaAction prints the JSON schema of the engine configuration.
func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := engine.DefaultConfig().GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "pinebt",
		Usage: "Backtest Pine strategies against historical OHLCV data",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Generate sample price data and load the demo strategies",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringSliceFlag{
						Name:    "symbol",
						Aliases: []string{"s"},
						Usage:   "Symbols to generate data for",
						Value:   []string{"NIFTY50", "SENSEX"},
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of trading days to generate",
						Value: 252,
					},
					&cli.TimestampFlag{
						Name:  "start",
						Usage: "First day of generated data in `YYYY-MM-DD` format",
						Value: time.Now().AddDate(-1, 0, 0),
						Config: cli.TimestampConfig{
							Layouts: []string{dateLayout},
						},
					},
				},
				Action: seedAction,
			},
			{
				Name:  "run",
				Usage: "Run a backtest and persist the result",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{
						Name:  "strategy-file",
						Usage: "Path to a Pine strategy source file",
					},
					&cli.StringFlag{
						Name:  "strategy-id",
						Usage: "ID of a stored strategy",
					},
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"s"},
						Usage:    "Symbol to backtest",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:     "start",
						Usage:    "Start date in `YYYY-MM-DD` format",
						Required: true,
						Config: cli.TimestampConfig{
							Layouts: []string{dateLayout},
						},
					},
					&cli.TimestampFlag{
						Name:     "end",
						Usage:    "End date in `YYYY-MM-DD` format. Defaults to today.",
						Value:    time.Now(),
						Required: false,
						Config: cli.TimestampConfig{
							Layouts: []string{dateLayout},
						},
					},
					&cli.FloatFlag{
						Name:    "capital",
						Aliases: []string{"c"},
						Usage:   "Initial capital",
						Value:   10000,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the YAML run summary",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to a YAML engine config file",
					},
				},
				Action: runAction,
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
				Action: serveAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the engine configuration JSON schema",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
