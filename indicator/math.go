package indicator

import "math"

// Shared numeric primitives for the indicator catalog. All rolling series
// helpers align their output so entry i covers vals[i..i+period-1], giving
// len(vals)-period+1 entries. Callers are expected to guard lengths via the
// catalog minimum history before reaching these.

// smaSeries returns the rolling simple moving averages of the provided values.
func smaSeries(vals []float64, period int) []float64 {
	if len(vals) < period || period <= 0 {
		return nil
	}

	out := make([]float64, 0, len(vals)-period+1)
	var sum float64
	for idx := range vals {
		sum += vals[idx]
		if idx >= period {
			sum -= vals[idx-period]
		}
		if idx >= period-1 {
			out = append(out, sum/float64(period))
		}
	}

	return out
}

// emaSeries returns the rolling exponential moving averages of the provided
// values, seeded with the simple average of the first period entries.
func emaSeries(vals []float64, period int) []float64 {
	if len(vals) < period || period <= 0 {
		return nil
	}

	var seed float64
	for idx := 0; idx < period; idx++ {
		seed += vals[idx]
	}
	seed /= float64(period)

	multiplier := 2 / float64(period+1)
	out := make([]float64, 0, len(vals)-period+1)
	out = append(out, seed)

	prev := seed
	for idx := period; idx < len(vals); idx++ {
		prev = (vals[idx]-prev)*multiplier + prev
		out = append(out, prev)
	}

	return out
}

// wilderSeries returns the rolling Wilder-smoothed averages of the provided
// values, seeded with the simple average of the first period entries.
func wilderSeries(vals []float64, period int) []float64 {
	if len(vals) < period || period <= 0 {
		return nil
	}

	var seed float64
	for idx := 0; idx < period; idx++ {
		seed += vals[idx]
	}
	seed /= float64(period)

	out := make([]float64, 0, len(vals)-period+1)
	out = append(out, seed)

	prev := seed
	for idx := period; idx < len(vals); idx++ {
		prev = (prev*float64(period-1) + vals[idx]) / float64(period)
		out = append(out, prev)
	}

	return out
}

// wmaSeries returns the rolling linearly-weighted moving averages of the
// provided values, with the most recent entry carrying the largest weight.
func wmaSeries(vals []float64, period int) []float64 {
	if len(vals) < period || period <= 0 {
		return nil
	}

	denominator := float64(period*(period+1)) / 2
	out := make([]float64, 0, len(vals)-period+1)
	for idx := period - 1; idx < len(vals); idx++ {
		var weighted float64
		for offset := 0; offset < period; offset++ {
			weighted += vals[idx-period+1+offset] * float64(offset+1)
		}
		out = append(out, weighted/denominator)
	}

	return out
}

// last returns the final entry of the provided series, or zero when empty.
func last(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}

// stdDev returns the population standard deviation of the provided values.
func stdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}

	var mean float64
	for idx := range vals {
		mean += vals[idx]
	}
	mean /= float64(len(vals))

	var variance float64
	for idx := range vals {
		diff := vals[idx] - mean
		variance += diff * diff
	}
	variance /= float64(len(vals))

	return math.Sqrt(variance)
}

// meanAbsDeviation returns the mean absolute deviation of the provided values
// around the provided center.
func meanAbsDeviation(vals []float64, center float64) float64 {
	if len(vals) == 0 {
		return 0
	}

	var total float64
	for idx := range vals {
		total += math.Abs(vals[idx] - center)
	}

	return total / float64(len(vals))
}

// trueRanges returns the true range series. Entry i covers the candle at
// index i+1 of the source series, giving len-1 entries.
func trueRanges(highs []float64, lows []float64, closes []float64) []float64 {
	if len(highs) < 2 {
		return nil
	}

	out := make([]float64, 0, len(highs)-1)
	for idx := 1; idx < len(highs); idx++ {
		highLow := highs[idx] - lows[idx]
		highClose := math.Abs(highs[idx] - closes[idx-1])
		lowClose := math.Abs(lows[idx] - closes[idx-1])
		out = append(out, math.Max(highLow, math.Max(highClose, lowClose)))
	}

	return out
}

// typicalPrices returns the typical price series (high+low+close)/3.
func typicalPrices(highs []float64, lows []float64, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for idx := range closes {
		out[idx] = (highs[idx] + lows[idx] + closes[idx]) / 3
	}

	return out
}

// highest returns the largest entry of the provided values.
func highest(vals []float64) float64 {
	max := math.Inf(-1)
	for idx := range vals {
		if vals[idx] > max {
			max = vals[idx]
		}
	}

	return max
}

// lowest returns the smallest entry of the provided values.
func lowest(vals []float64) float64 {
	min := math.Inf(1)
	for idx := range vals {
		if vals[idx] < min {
			min = vals[idx]
		}
	}

	return min
}

// clampUnit clamps the provided value into the [0, 1] interval.
func clampUnit(val float64) float64 {
	switch {
	case val < 0:
		return 0
	case val > 1:
		return 1
	default:
		return val
	}
}
