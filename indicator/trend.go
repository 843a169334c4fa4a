package indicator

import (
	"math"

	"github.com/dnldd/quorum/shared"
)

const (
	// minTrendADX is the ADX level above which a trend is considered
	// established enough to vote.
	minTrendADX = float64(25)
	// Parabolic SAR acceleration factor parameters.
	sarAccelerationStart = 0.02
	sarAccelerationStep  = 0.02
	sarAccelerationMax   = 0.2
)

// computeADX generates an average directional index result with its
// directional lines. An ADX at or below 25 means no established trend and
// yields a neutral vote regardless of the directional lines.
func computeADX(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < 2*period+1 {
			return nil
		}

		plusDM := make([]float64, len(closes)-1)
		minusDM := make([]float64, len(closes)-1)
		for idx := 1; idx < len(closes); idx++ {
			upMove := highs[idx] - highs[idx-1]
			downMove := lows[idx-1] - lows[idx]
			if upMove > downMove && upMove > 0 {
				plusDM[idx-1] = upMove
			}
			if downMove > upMove && downMove > 0 {
				minusDM[idx-1] = downMove
			}
		}

		smoothedTR := wilderSeries(trueRanges(highs, lows, closes), period)
		smoothedPlus := wilderSeries(plusDM, period)
		smoothedMinus := wilderSeries(minusDM, period)

		dx := make([]float64, len(smoothedTR))
		plusDI := make([]float64, len(smoothedTR))
		minusDI := make([]float64, len(smoothedTR))
		for idx := range smoothedTR {
			if smoothedTR[idx] == 0 {
				continue
			}
			plusDI[idx] = 100 * smoothedPlus[idx] / smoothedTR[idx]
			minusDI[idx] = 100 * smoothedMinus[idx] / smoothedTR[idx]
			if sum := plusDI[idx] + minusDI[idx]; sum != 0 {
				dx[idx] = 100 * math.Abs(plusDI[idx]-minusDI[idx]) / sum
			}
		}

		adxSeries := wilderSeries(dx, period)
		if len(adxSeries) == 0 {
			return nil
		}

		adx := last(adxSeries)
		plus, minus := last(plusDI), last(minusDI)

		vote := shared.Neutral
		if adx > minTrendADX {
			switch {
			case plus > minus:
				vote = shared.Long
			case minus > plus:
				vote = shared.Short
			}
		}

		conviction := clampUnit(math.Max(0, adx-minTrendADX) / minTrendADX)

		return newResult(name, shared.Trend, vote, conviction, adx, plus, minus)
	}
}

// computeVortex generates a vortex indicator result comparing positive and
// negative trend movement over the period.
func computeVortex(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < period+1 {
			return nil
		}

		var plusVM, minusVM, trSum float64
		ranges := trueRanges(highs, lows, closes)
		for idx := len(closes) - period; idx < len(closes); idx++ {
			plusVM += math.Abs(highs[idx] - lows[idx-1])
			minusVM += math.Abs(lows[idx] - highs[idx-1])
			trSum += ranges[idx-1]
		}

		if trSum == 0 {
			return newResult(name, shared.Trend, shared.Neutral, 0, 1, 1)
		}

		plus := plusVM / trSum
		minus := minusVM / trSum

		vote := shared.Neutral
		switch {
		case plus > minus:
			vote = shared.Long
		case minus > plus:
			vote = shared.Short
		}

		return newResult(name, shared.Trend, vote, clampUnit(math.Abs(plus-minus)), plus, minus)
	}
}

// computeAroon generates an aroon result measuring how recently the period
// extremes were set. Both lines must agree strongly before a vote is cast.
func computeAroon(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows := series.Highs(), series.Lows()
		if len(highs) < period+1 {
			return nil
		}

		sinceHigh, sinceLow := 0, 0
		hh, ll := highs[len(highs)-1], lows[len(lows)-1]
		for offset := 1; offset <= period; offset++ {
			idx := len(highs) - 1 - offset
			if highs[idx] > hh {
				hh = highs[idx]
				sinceHigh = offset
			}
			if lows[idx] < ll {
				ll = lows[idx]
				sinceLow = offset
			}
		}

		up := 100 * float64(period-sinceHigh) / float64(period)
		down := 100 * float64(period-sinceLow) / float64(period)

		vote := shared.Neutral
		switch {
		case up > 70 && up > down:
			vote = shared.Long
		case down > 70 && down > up:
			vote = shared.Short
		}

		return newResult(name, shared.Trend, vote, math.Abs(up-down)/100, up, down)
	}
}

// computeParabolicSAR generates a parabolic stop-and-reverse result by
// iterating the SAR over the full series.
func computeParabolicSAR(name string) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < 2 {
			return nil
		}

		rising := closes[1] >= closes[0]
		af := sarAccelerationStart
		var sar, extreme float64
		if rising {
			sar = lows[0]
			extreme = highs[1]
		} else {
			sar = highs[0]
			extreme = lows[1]
		}

		for idx := 2; idx < len(closes); idx++ {
			sar = sar + af*(extreme-sar)

			if rising {
				// SAR may never enter the prior two candle ranges.
				sar = math.Min(sar, math.Min(lows[idx-1], lows[idx-2]))
				if lows[idx] < sar {
					rising = false
					sar = extreme
					extreme = lows[idx]
					af = sarAccelerationStart
					continue
				}
				if highs[idx] > extreme {
					extreme = highs[idx]
					af = math.Min(af+sarAccelerationStep, sarAccelerationMax)
				}
				continue
			}

			sar = math.Max(sar, math.Max(highs[idx-1], highs[idx-2]))
			if highs[idx] > sar {
				rising = true
				sar = extreme
				extreme = highs[idx]
				af = sarAccelerationStart
				continue
			}
			if lows[idx] < extreme {
				extreme = lows[idx]
				af = math.Min(af+sarAccelerationStep, sarAccelerationMax)
			}
		}

		close := last(closes)
		vote := shared.Neutral
		switch {
		case close > sar:
			vote = shared.Long
		case close < sar:
			vote = shared.Short
		}

		return newResult(name, shared.Trend, vote, clampUnit(math.Abs(close-sar)/close), sar)
	}
}

// computeSuperTrend generates a supertrend result: an ATR-banded trailing
// line that flips sides when price closes through it.
func computeSuperTrend(name string, period int, multiplier float64) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		atr := wilderSeries(trueRanges(highs, lows, closes), period)
		if len(atr) == 0 {
			return nil
		}

		// ATR entry j corresponds to candle index period+j.
		start := len(closes) - len(atr)
		rising := true
		var finalUpper, finalLower float64
		for idx := start; idx < len(closes); idx++ {
			mid := (highs[idx] + lows[idx]) / 2
			band := multiplier * atr[idx-start]
			basicUpper := mid + band
			basicLower := mid - band

			if idx == start {
				finalUpper = basicUpper
				finalLower = basicLower
				continue
			}

			if basicUpper < finalUpper || closes[idx-1] > finalUpper {
				finalUpper = basicUpper
			}
			if basicLower > finalLower || closes[idx-1] < finalLower {
				finalLower = basicLower
			}

			switch {
			case closes[idx] > finalUpper:
				rising = true
			case closes[idx] < finalLower:
				rising = false
			}
		}

		close := last(closes)
		line := finalUpper
		vote := shared.Short
		if rising {
			line = finalLower
			vote = shared.Long
		}

		return newResult(name, shared.Volatility, vote, clampUnit(math.Abs(close-line)/close), line)
	}
}

// computeIchimoku generates an ichimoku cloud result. The cloud spans are
// computed at the displacement offset, so price is compared against the
// cloud projected for the current candle.
func computeIchimoku(name string, conversion, base, span, displacement int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < span+displacement {
			return nil
		}

		midpoint := func(end, period int) float64 {
			window := end - period + 1
			return (highest(highs[window:end+1]) + lowest(lows[window:end+1])) / 2
		}

		anchor := len(closes) - 1 - displacement
		tenkan := midpoint(anchor, conversion)
		kijun := midpoint(anchor, base)
		spanA := (tenkan + kijun) / 2
		spanB := midpoint(anchor, span)

		cloudTop := math.Max(spanA, spanB)
		cloudBottom := math.Min(spanA, spanB)
		close := last(closes)

		vote := shared.Neutral
		conviction := float64(0)
		switch {
		case close > cloudTop:
			vote = shared.Long
			conviction = clampUnit((close - cloudTop) / close)
		case close < cloudBottom:
			vote = shared.Short
			conviction = clampUnit((cloudBottom - close) / close)
		}

		return newResult(name, shared.Composite, vote, conviction, spanA, spanB)
	}
}

// trendIndicators returns the trend family catalog entries.
func trendIndicators() []Indicator {
	return []Indicator{
		{Name: "adx_14", Category: shared.Trend, MinHistory: 30, Compute: computeADX("adx_14", 14)},
		{Name: "vortex_14", Category: shared.Trend, MinHistory: 16, Compute: computeVortex("vortex_14", 14)},
		{Name: "aroon_25", Category: shared.Trend, MinHistory: 26, Compute: computeAroon("aroon_25", 25)},
		{Name: "parabolic_sar", Category: shared.Trend, MinHistory: 10, Compute: computeParabolicSAR("parabolic_sar")},
		{Name: "supertrend_10_3", Category: shared.Volatility, MinHistory: 12, Compute: computeSuperTrend("supertrend_10_3", 10, 3)},
		{Name: "ichimoku_9_26_52", Category: shared.Composite, MinHistory: 78, Compute: computeIchimoku("ichimoku_9_26_52", 9, 26, 52, 26)},
	}
}
