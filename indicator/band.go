package indicator

import (
	"math"

	"github.com/dnldd/quorum/shared"
)

// The band family uses one consistent framing per band type: bollinger bands
// are read as mean reversion (a close at the band argues for a move back to
// the middle), while keltner channels and donchian channels are read as
// breakouts (a close through the band argues for continuation).

// computeBollinger generates a bollinger band result framed as mean
// reversion: a close at or beyond a band votes against the move.
func computeBollinger(name string, period int, multiplier float64) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		if len(closes) < period {
			return nil
		}

		window := closes[len(closes)-period:]
		middle := last(smaSeries(window, period))
		deviation := stdDev(window)
		if deviation == 0 {
			return newResult(name, shared.Band, shared.Neutral, 0, middle, middle, middle)
		}

		upper := middle + multiplier*deviation
		lower := middle - multiplier*deviation

		close := last(closes)
		vote := shared.Neutral
		switch {
		case close <= lower:
			vote = shared.Long
		case close >= upper:
			vote = shared.Short
		}

		conviction := clampUnit(math.Abs(close-middle) / (multiplier * deviation))

		return newResult(name, shared.Band, vote, conviction, upper, middle, lower)
	}
}

// computeKeltner generates a keltner channel result framed as a breakout: a
// close through an ATR band votes with the move.
func computeKeltner(name string, period int, multiplier float64) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		middleSeries := emaSeries(closes, period)
		atr := wilderSeries(trueRanges(highs, lows, closes), period)
		if len(middleSeries) == 0 || len(atr) == 0 {
			return nil
		}

		middle := last(middleSeries)
		band := multiplier * last(atr)
		upper := middle + band
		lower := middle - band

		close := last(closes)
		vote := shared.Neutral
		switch {
		case close > upper:
			vote = shared.Long
		case close < lower:
			vote = shared.Short
		}

		conviction := float64(0)
		if band != 0 {
			conviction = clampUnit(math.Abs(close-middle) / band)
		}

		return newResult(name, shared.Band, vote, conviction, upper, middle, lower)
	}
}

// computeDonchian generates a donchian channel result framed as a breakout.
// The channel excludes the current candle so a new extreme registers as a
// close through the prior channel.
func computeDonchian(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < period+1 {
			return nil
		}

		window := len(closes) - 1
		upper := highest(highs[window-period : window])
		lower := lowest(lows[window-period : window])
		middle := (upper + lower) / 2

		close := last(closes)
		vote := shared.Neutral
		switch {
		case close > upper:
			vote = shared.Long
		case close < lower:
			vote = shared.Short
		}

		conviction := float64(0)
		if width := upper - lower; width != 0 {
			conviction = clampUnit(math.Abs(close-middle) / width)
		}

		return newResult(name, shared.Band, vote, conviction, upper, middle, lower)
	}
}

// computePercentB generates a bollinger %B result: where the close sits
// within the bands, read with the same mean reversion framing as the bands
// themselves. Values outside [0, 1] are closes beyond a band.
func computePercentB(name string, period int, multiplier float64) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		if len(closes) < period {
			return nil
		}

		window := closes[len(closes)-period:]
		middle := last(smaSeries(window, period))
		deviation := stdDev(window)
		if deviation == 0 {
			return newResult(name, shared.Composite, shared.Neutral, 0, 0.5)
		}

		lower := middle - multiplier*deviation
		upper := middle + multiplier*deviation
		percentB := (last(closes) - lower) / (upper - lower)

		vote := shared.Neutral
		switch {
		case percentB < 0:
			vote = shared.Long
		case percentB > 1:
			vote = shared.Short
		}

		return newResult(name, shared.Composite, vote, clampUnit(math.Abs(percentB-0.5)), percentB)
	}
}

// bandIndicators returns the band family catalog entries.
func bandIndicators() []Indicator {
	return []Indicator{
		{Name: "bollinger_20_2", Category: shared.Band, MinHistory: 21, Compute: computeBollinger("bollinger_20_2", 20, 2)},
		{Name: "keltner_20_2", Category: shared.Band, MinHistory: 21, Compute: computeKeltner("keltner_20_2", 20, 2)},
		{Name: "donchian_20", Category: shared.Band, MinHistory: 21, Compute: computeDonchian("donchian_20", 20)},
		{Name: "percent_b_20_2", Category: shared.Composite, MinHistory: 21, Compute: computePercentB("percent_b_20_2", 20, 2)},
	}
}
