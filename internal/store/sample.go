package store

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/quantfold/pinebt/internal/types"
)

const smaCrossoverScript = `//@version=5
strategy("SMA Crossover", overlay=true)

fast_length = input.int(10, title="Fast MA Length")
slow_length = input.int(20, title="Slow MA Length")

fast_ma = ta.sma(close, fast_length)
slow_ma = ta.sma(close, slow_length)

plot(fast_ma, color=color.blue, title="Fast MA")
plot(slow_ma, color=color.red, title="Slow MA")

if ta.crossover(fast_ma, slow_ma)
    strategy.entry("Long", strategy.long)

if ta.crossunder(fast_ma, slow_ma)
    strategy.close("Long")`

const rsiScript = `//@version=5
strategy("RSI Strategy", overlay=false)

rsi_length = input.int(14, title="RSI Length")
oversold = input.int(30, title="Oversold Level")
overbought = input.int(70, title="Overbought Level")

rsi = ta.rsi(close, rsi_length)

plot(rsi, color=color.purple, title="RSI")
hline(oversold, "Oversold", color=color.green)
hline(overbought, "Overbought", color=color.red)

if rsi < oversold
    strategy.entry("Long", strategy.long)

if rsi > overbought
    strategy.close("Long")`

const bollingerScript = `//@version=5
strategy("Bollinger Bands", overlay=true)

length = input.int(20, title="BB Length")
mult = input.float(2.0, title="BB Multiplier")

basis = ta.sma(close, length)
dev = mult * ta.stdev(close, length)
upper = basis + dev
lower = basis - dev

plot(basis, color=color.orange, title="Middle Band")
plot(upper, color=color.red, title="Upper Band")
plot(lower, color=color.green, title="Lower Band")

if close <= lower
    strategy.entry("Long", strategy.long)

if close >= upper
    strategy.close("Long")`

// SampleStrategies returns the built-in demo strategies, one per recognized
// family. IDs are assigned by the store on insert.
func SampleStrategies() []StrategyRecord {
	return []StrategyRecord{
		{
			Name:        "Simple Moving Average Crossover",
			Description: "Buy when fast MA crosses above slow MA, sell when it crosses below",
			PineScript:  smaCrossoverScript,
			IsPublic:    true,
		},
		{
			Name:        "RSI Oversold/Overbought",
			Description: "Buy when RSI is oversold (below 30), sell when overbought (above 70)",
			PineScript:  rsiScript,
			IsPublic:    true,
		},
		{
			Name:        "Bollinger Bands Mean Reversion",
			Description: "Buy when price touches lower band, sell when it touches upper band",
			PineScript:  bollingerScript,
			IsPublic:    true,
		},
	}
}

// GenerateSampleBars produces a deterministic daily OHLCV random walk for a
// symbol, one bar per weekday starting at start. The walk is seeded from the
// symbol name so repeated seeding yields identical data.
func GenerateSampleBars(symbol string, start time.Time, tradingDays int) []types.PriceBar {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// Starting price between 100 and 1100.
	price := rng.Float64()*1000 + 100

	bars := make([]types.PriceBar, 0, tradingDays)
	day := start.UTC().Truncate(24 * time.Hour)

	for len(bars) < tradingDays {
		// Skip weekends.
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)

			continue
		}

		const volatility = 0.02
		change := (rng.Float64() - 0.5) * 2 * volatility

		open := price
		close := open * (1 + change)
		high := math.Max(open, close) * (1 + rng.Float64()*0.01)
		low := math.Min(open, close) * (1 - rng.Float64()*0.01)

		bars = append(bars, types.PriceBar{
			Timestamp: day.UnixMilli(),
			Open:      roundPrice(open),
			High:      roundPrice(high),
			Low:       roundPrice(low),
			Close:     roundPrice(close),
			Volume:    rng.Int63n(1000000) + 100000,
		})

		price = close
		day = day.AddDate(0, 0, 1)
	}

	return bars
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
