package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dnldd/quorum/indicator"
	"github.com/dnldd/quorum/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

// trendingSeries builds a series of candles compounding by ratePercent per
// candle. A negative rate compounds downward.
func trendingSeries(t *testing.T, count int, start, ratePercent float64) *shared.CandleSeries {
	t.Helper()

	candles := make([]shared.Candlestick, count)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	open := start
	for idx := range candles {
		close := open * (1 + ratePercent/100)
		high := close
		low := open
		if open > close {
			high, low = open, close
		}

		candles[idx] = shared.Candlestick{
			Open:      open,
			Close:     close,
			High:      high * 1.001,
			Low:       low * 0.999,
			Volume:    100,
			Date:      date,
			Market:    "BTCUSDT",
			Timeframe: shared.OneHour,
		}
		open = close
		date = date.Add(time.Hour)
	}

	series, err := shared.NewCandleSeries(candles)
	assert.NoError(t, err)

	return series
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	eng, err := NewEngine(&EngineConfig{
		RiskProfiles: DefaultRiskProfiles(),
		Catalog:      indicator.Catalog(),
		Logger:       zerolog.Nop(),
	})
	assert.NoError(t, err)

	return eng
}

func TestEngineConfigValidate(t *testing.T) {
	// Ensure a missing catalog and risk profiles fail validation.
	_, err := NewEngine(&EngineConfig{Logger: zerolog.Nop()})
	assert.Error(t, err)

	// Ensure duplicate catalog names fail validation.
	catalog := []indicator.Indicator{
		{Name: "rsi_14", Compute: func(*shared.CandleSeries) *shared.IndicatorResult { return nil }},
		{Name: "rsi_14", Compute: func(*shared.CandleSeries) *shared.IndicatorResult { return nil }},
	}
	_, err = NewEngine(&EngineConfig{
		RiskProfiles: DefaultRiskProfiles(),
		Catalog:      catalog,
		Logger:       zerolog.Nop(),
	})
	assert.Error(t, err)

	// Ensure a nil compute function fails validation.
	_, err = NewEngine(&EngineConfig{
		RiskProfiles: DefaultRiskProfiles(),
		Catalog:      []indicator.Indicator{{Name: "rsi_14"}},
		Logger:       zerolog.Nop(),
	})
	assert.Error(t, err)
}

func TestEvaluateTrendingMarket(t *testing.T) {
	eng := newTestEngine(t)
	series := trendingSeries(t, 60, 100, 0.5)

	signal, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, nil)
	assert.NoError(t, err)

	// A sustained climb carries the quorum with a deep bench of indicators.
	assert.Equal(t, signal.Symbol, "BTCUSDT")
	assert.Equal(t, signal.Timeframe, shared.OneHour)
	assert.Equal(t, signal.Direction, shared.Long)
	assert.Equal(t, signal.Confidence, shared.HighConfidence)
	assert.Equal(t, signal.Leverage, float64(12))
	assert.Equal(t, signal.EntryPrice, series.Last().Close)

	// The creation time is left for the emitting caller to stamp.
	assert.True(t, signal.CreatedOn.IsZero())

	// Risk levels bracket the entry in trade direction.
	assert.True(t, signal.StopLoss < signal.EntryPrice)
	assert.True(t, signal.EntryPrice < signal.TakeProfitOne)
	assert.True(t, signal.TakeProfitOne < signal.TakeProfitTwo)

	// The strongest five aligned indicators are surfaced.
	assert.Equal(t, len(signal.ContributingIndicators), 5)
	for _, contributor := range signal.ContributingIndicators {
		assert.Equal(t, contributor.Vote, shared.Long)
	}

	// The mirrored decline carries a short quorum.
	falling := trendingSeries(t, 60, 100, -0.5)
	signal, err = eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, falling, nil)
	assert.NoError(t, err)
	assert.Equal(t, signal.Direction, shared.Short)
	assert.True(t, signal.StopLoss > signal.EntryPrice)
	assert.True(t, signal.TakeProfitOne < signal.EntryPrice)
	assert.True(t, signal.TakeProfitTwo < signal.TakeProfitOne)
}

func TestEvaluateInsufficientHistory(t *testing.T) {
	eng := newTestEngine(t)
	series := trendingSeries(t, 5, 100, 0.5)

	// With five candles no indicator meets its history requirement, so the
	// evaluation is a neutral low confidence read rather than an error.
	signal, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, nil)
	assert.NoError(t, err)
	assert.Equal(t, signal.Direction, shared.Neutral)
	assert.Equal(t, signal.Confidence, shared.LowConfidence)
	assert.Equal(t, len(signal.ContributingIndicators), 0)

	// Advisory risk levels are still attached.
	assert.True(t, signal.StopLoss < signal.EntryPrice)
	assert.True(t, signal.EntryPrice < signal.TakeProfitOne)
}

func TestEvaluateUnknownTimeframe(t *testing.T) {
	eng := newTestEngine(t)
	series := trendingSeries(t, 60, 100, 0.5)

	_, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.Timeframe(99), series, nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnknownTimeframe))
}

func TestEvaluateEmptySeries(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, nil, nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidSeries))
}

func TestEvaluateWithFilter(t *testing.T) {
	eng := newTestEngine(t)
	series := trendingSeries(t, 60, 100, 0.5)

	// Restricting the catalog to a single overbought oscillator flips the
	// read and drops the confidence with it.
	filter := &shared.IndicatorFilter{Include: []string{"rsi_14"}}
	signal, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, filter)
	assert.NoError(t, err)
	assert.Equal(t, signal.Direction, shared.Short)
	assert.Equal(t, signal.Confidence, shared.LowConfidence)
	assert.Equal(t, len(signal.ContributingIndicators), 1)
	assert.Equal(t, signal.ContributingIndicators[0].Name, "rsi_14")

	// Excluding everything considered leaves a neutral read.
	exclude := &shared.IndicatorFilter{Include: []string{"rsi_14"}, Exclude: []string{"rsi_14"}}
	signal, err = eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, exclude)
	assert.NoError(t, err)
	assert.Equal(t, signal.Direction, shared.Neutral)
	assert.Equal(t, signal.Confidence, shared.LowConfidence)
}

func TestEvaluateDeterminism(t *testing.T) {
	eng := newTestEngine(t)
	series := trendingSeries(t, 90, 100, 0.5)

	// Ensure repeated evaluations of the same series are identical despite
	// the concurrent fan-out.
	first, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, nil)
	assert.NoError(t, err)

	second, err := eng.Evaluate(context.Background(), "BTCUSDT", shared.OneHour, series, nil)
	assert.NoError(t, err)

	diff := cmp.Diff(first, second)
	if diff != "" {
		t.Errorf("evaluations diverged (-first +second):\n%s", diff)
	}
}
