package indicator

import (
	"math"

	"github.com/dnldd/quorum/shared"
)

// demaSeries returns the double exponential moving average series, aligned
// to the end of the provided values.
func demaSeries(vals []float64, period int) []float64 {
	first := emaSeries(vals, period)
	second := emaSeries(first, period)
	if len(second) == 0 {
		return nil
	}

	offset := len(first) - len(second)
	out := make([]float64, len(second))
	for idx := range second {
		out[idx] = 2*first[idx+offset] - second[idx]
	}

	return out
}

// temaSeries returns the triple exponential moving average series, aligned
// to the end of the provided values.
func temaSeries(vals []float64, period int) []float64 {
	first := emaSeries(vals, period)
	second := emaSeries(first, period)
	third := emaSeries(second, period)
	if len(third) == 0 {
		return nil
	}

	firstOffset := len(first) - len(third)
	secondOffset := len(second) - len(third)
	out := make([]float64, len(third))
	for idx := range third {
		out[idx] = 3*first[idx+firstOffset] - 3*second[idx+secondOffset] + third[idx]
	}

	return out
}

// zlemaSeries returns the zero lag exponential moving average series: an EMA
// over lag-compensated prices.
func zlemaSeries(vals []float64, period int) []float64 {
	lag := (period - 1) / 2
	if len(vals) < period+lag {
		return nil
	}

	adjusted := make([]float64, len(vals)-lag)
	for idx := lag; idx < len(vals); idx++ {
		adjusted[idx-lag] = 2*vals[idx] - vals[idx-lag]
	}

	return emaSeries(adjusted, period)
}

// tmaSeries returns the triangular moving average series: a twice-smoothed
// simple moving average weighting the middle of the window most heavily.
func tmaSeries(vals []float64, period int) []float64 {
	half := (period + 1) / 2
	return smaSeries(smaSeries(vals, half), half)
}

// hmaSeries returns the Hull moving average series: a weighted average of
// lag-compensated weighted averages.
func hmaSeries(vals []float64, period int) []float64 {
	half := wmaSeries(vals, period/2)
	full := wmaSeries(vals, period)
	if len(full) == 0 {
		return nil
	}

	offset := len(half) - len(full)
	diff := make([]float64, len(full))
	for idx := range full {
		diff[idx] = 2*half[idx+offset] - full[idx]
	}

	return wmaSeries(diff, int(math.Round(math.Sqrt(float64(period)))))
}

// maPairVote derives a directional vote from a short/long moving average
// pair: short above long is bullish, below is bearish.
func maPairVote(name string, category shared.Category, short, long float64) *shared.IndicatorResult {
	vote := shared.Neutral
	switch {
	case short > long:
		vote = shared.Long
	case short < long:
		vote = shared.Short
	}

	conviction := float64(0)
	if long != 0 {
		conviction = clampUnit(math.Abs(short-long) / long)
	}

	return newResult(name, category, vote, conviction, short, long)
}

// maPriceVote derives a directional vote from price relative to a moving
// average: closing above it is bullish, below is bearish.
func maPriceVote(name string, category shared.Category, close, ma float64) *shared.IndicatorResult {
	vote := shared.Neutral
	switch {
	case close > ma:
		vote = shared.Long
	case close < ma:
		vote = shared.Short
	}

	conviction := float64(0)
	if ma != 0 {
		conviction = clampUnit(math.Abs(close-ma) / ma)
	}

	return newResult(name, category, vote, conviction, ma, close)
}

// maSlopeVote derives a directional vote from the slope of a lag-compensated
// moving average. These averages overshoot price on compounding moves, which
// makes price-relative reads mislead; the direction of the average itself
// does not.
func maSlopeVote(name string, category shared.Category, current, previous float64) *shared.IndicatorResult {
	vote := shared.Neutral
	switch {
	case current > previous:
		vote = shared.Long
	case current < previous:
		vote = shared.Short
	}

	conviction := float64(0)
	if previous != 0 {
		conviction = clampUnit(math.Abs(current-previous) / math.Abs(previous))
	}

	return newResult(name, category, vote, conviction, current, previous)
}

// maSeriesFunc computes a moving average series over closes.
type maSeriesFunc func(vals []float64, period int) []float64

// computeMAPair generates a short/long moving average pair result.
func computeMAPair(name string, seriesFunc maSeriesFunc, short, long int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		shortMA := seriesFunc(series.Closes(), short)
		longMA := seriesFunc(series.Closes(), long)
		if len(shortMA) == 0 || len(longMA) == 0 {
			return nil
		}

		return maPairVote(name, shared.MovingAverage, last(shortMA), last(longMA))
	}
}

// computeMAPrice generates a price-versus-moving-average result.
func computeMAPrice(name string, seriesFunc maSeriesFunc, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		ma := seriesFunc(series.Closes(), period)
		if len(ma) == 0 {
			return nil
		}

		return maPriceVote(name, shared.MovingAverage, last(series.Closes()), last(ma))
	}
}

// computeMASlope generates a result from the direction of a single
// lag-compensated moving average.
func computeMASlope(name string, seriesFunc maSeriesFunc, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		ma := seriesFunc(series.Closes(), period)
		if len(ma) < 2 {
			return nil
		}

		return maSlopeVote(name, shared.MovingAverage, ma[len(ma)-1], ma[len(ma)-2])
	}
}

// computeMASlopePair generates a result from a short/long lag-compensated
// pair, voting only when both averages slope the same way.
func computeMASlopePair(name string, seriesFunc maSeriesFunc, short, long int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		shortMA := seriesFunc(series.Closes(), short)
		longMA := seriesFunc(series.Closes(), long)
		if len(shortMA) < 2 || len(longMA) < 2 {
			return nil
		}

		shortVote := maSlopeVote(name, shared.MovingAverage, last(shortMA), shortMA[len(shortMA)-2])
		longVote := maSlopeVote(name, shared.MovingAverage, last(longMA), longMA[len(longMA)-2])
		if shortVote.Vote != longVote.Vote {
			return newResult(name, shared.MovingAverage, shared.Neutral, 0, last(shortMA), last(longMA))
		}

		conviction := math.Max(shortVote.Conviction, longVote.Conviction)

		return newResult(name, shared.MovingAverage, shortVote.Vote, conviction, last(shortMA), last(longMA))
	}
}

// movingAverageIndicators returns the moving average family catalog entries.
func movingAverageIndicators() []Indicator {
	return []Indicator{
		{Name: "sma_20_50", Category: shared.MovingAverage, MinHistory: 51, Compute: computeMAPair("sma_20_50", smaSeries, 20, 50)},
		{Name: "ema_12_26", Category: shared.MovingAverage, MinHistory: 27, Compute: computeMAPair("ema_12_26", emaSeries, 12, 26)},
		{Name: "ema_9_50", Category: shared.MovingAverage, MinHistory: 51, Compute: computeMAPair("ema_9_50", emaSeries, 9, 50)},
		{Name: "zlema_12_26", Category: shared.MovingAverage, MinHistory: 40, Compute: computeMASlopePair("zlema_12_26", zlemaSeries, 12, 26)},
		{Name: "tma_20_50", Category: shared.MovingAverage, MinHistory: 51, Compute: computeMAPair("tma_20_50", tmaSeries, 20, 50)},
		{Name: "dema_9", Category: shared.MovingAverage, MinHistory: 18, Compute: computeMASlope("dema_9", demaSeries, 9)},
		{Name: "tema_9", Category: shared.MovingAverage, MinHistory: 26, Compute: computeMAPrice("tema_9", temaSeries, 9)},
		{Name: "hma_21", Category: shared.MovingAverage, MinHistory: 26, Compute: computeMAPrice("hma_21", hmaSeries, 21)},
		{Name: "wma_20", Category: shared.MovingAverage, MinHistory: 21, Compute: computeMAPrice("wma_20", wmaSeries, 20)},
	}
}
