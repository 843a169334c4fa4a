package indicator

import (
	"testing"
	"time"

	"github.com/dnldd/quorum/shared"
	"github.com/peterldowns/testy/assert"
)

// rangedSeries builds candles with a fixed wide high/low range so the
// stochastic raw %K tracks the closes directly.
func rangedSeries(t *testing.T, closes []float64) *shared.CandleSeries {
	t.Helper()

	candles := make([]shared.Candlestick, len(closes))
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for idx := range closes {
		candles[idx] = shared.Candlestick{
			Open:      closes[idx],
			Close:     closes[idx],
			High:      101,
			Low:       1,
			Volume:    100,
			Date:      date,
			Market:    "BTCUSDT",
			Timeframe: shared.OneHour,
		}
		date = date.Add(time.Hour)
	}

	series, err := shared.NewCandleSeries(candles)
	assert.NoError(t, err)

	return series
}

func TestRSISaturation(t *testing.T) {
	// Ensure an all-gains series saturates the index at 100 instead of
	// dividing by a zero average loss.
	rising := risingSeries(t, 30, 100, 0.5)
	result := computeRSI("rsi_14", 14)(rising)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Values[0], float64(100))
	assert.Equal(t, result.Vote, shared.Short)
	assert.Equal(t, result.Conviction, float64(1))

	// Ensure an all-losses series floors the index at 0.
	falling := fallingSeries(t, 30, 100, 0.5)
	result = computeRSI("rsi_14", 14)(falling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Values[0], float64(0))
	assert.Equal(t, result.Vote, shared.Long)
}

func TestRSIInsufficientHistory(t *testing.T) {
	series := risingSeries(t, 10, 100, 0.5)
	result := computeRSI("rsi_14", 14)(series)
	if result != nil {
		t.Errorf("expected nil result for insufficient history, got %v", result)
	}
}

func TestStochasticCrossoverVotes(t *testing.T) {
	// With the candle range pinned to [1, 101] the raw %K equals close-1,
	// so the crossover can be laid out directly in the closes.
	base := make([]float64, 13)
	for idx := range base {
		base[idx] = 50
	}

	// %K dips below %D then crosses back above it in the lower third.
	bullish := rangedSeries(t, append(append([]float64{}, base...), 31, 25, 19, 13, 7, 13, 31))
	result := computeStochastic("stochastic_14_3", 14, 3, 3)(bullish)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Long)

	// %K rises above %D then crosses back below it in the upper third.
	bearish := rangedSeries(t, append(append([]float64{}, base...), 71, 77, 83, 89, 95, 89, 71))
	result = computeStochastic("stochastic_14_3", 14, 3, 3)(bearish)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Short)

	// A crossover in the middle of the range casts no vote.
	middling := rangedSeries(t, append(append([]float64{}, base...), 61, 55, 49, 43, 37, 43, 61))
	result = computeStochastic("stochastic_14_3", 14, 3, 3)(middling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Neutral)
}

func TestWilliamsR(t *testing.T) {
	// A close pinned to the top of its range is overbought.
	rising := risingSeries(t, 30, 100, 0.5)
	result := computeWilliamsR("williams_r_14", 14)(rising)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Short)

	// A close pinned to the bottom of its range is oversold.
	falling := fallingSeries(t, 30, 100, 0.5)
	result = computeWilliamsR("williams_r_14", 14)(falling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Long)
}

func TestMomentumAndROCVoteWithTrend(t *testing.T) {
	rising := risingSeries(t, 60, 100, 0.5)
	falling := fallingSeries(t, 60, 100, 0.5)

	tests := []struct {
		name    string
		compute ComputeFunc
	}{
		{"momentum_10", computeMomentum("momentum_10", 10)},
		{"roc_10", computeROC("roc_10", 10)},
		{"tsi_25_13", computeTSI("tsi_25_13", 25, 13)},
		{"macd_12_26", computeMACD("macd_12_26", 12, 26, 9)},
		{"ppo_12_26", computePPO("ppo_12_26", 12, 26, 9)},
		{"trix_14", computeTRIX("trix_14", 14)},
	}

	for _, test := range tests {
		result := test.compute(rising)
		if result == nil || result.Vote != shared.Long {
			t.Errorf("%s: expected LONG on rising series, got %v", test.name, result)
		}

		result = test.compute(falling)
		if result == nil || result.Vote != shared.Short {
			t.Errorf("%s: expected SHORT on falling series, got %v", test.name, result)
		}
	}
}

func TestCCIVotesAtExtremes(t *testing.T) {
	// A steady climb keeps the typical price far above its window mean.
	rising := risingSeries(t, 30, 100, 0.5)
	result := computeCCI("cci_20", 20)(rising)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Short)

	falling := fallingSeries(t, 30, 100, 0.5)
	result = computeCCI("cci_20", 20)(falling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Long)
}

func TestMACDZeroLineOnSteadyDecline(t *testing.T) {
	// On a compounding decline the line is negative but decays toward zero,
	// so it sits above its own signal average. The vote must follow the zero
	// line, not the signal line.
	falling := fallingSeries(t, 60, 100, 0.5)
	result := computeMACD("macd_12_26", 12, 26, 9)(falling)
	assert.NotEqual(t, result, nil)
	assert.True(t, result.Values[0] < 0)
	assert.True(t, result.Values[0] > result.Values[1])
	assert.Equal(t, result.Vote, shared.Short)

	result = computePPO("ppo_12_26", 12, 26, 9)(falling)
	assert.NotEqual(t, result, nil)
	assert.True(t, result.Values[0] < 0)
	assert.Equal(t, result.Vote, shared.Short)
}
