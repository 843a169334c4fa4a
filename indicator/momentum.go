package indicator

import (
	"math"

	"github.com/dnldd/quorum/shared"
)

const (
	// overboughtRSI and oversoldRSI are the classic RSI vote thresholds.
	overboughtRSI = float64(70)
	oversoldRSI   = float64(30)
	// stochLowerThird and stochUpperThird bound the stochastic crossover
	// zones that qualify for a directional vote.
	stochLowerThird = float64(100) / 3
	stochUpperThird = float64(200) / 3
)

// rsiSeries returns the Wilder-smoothed relative strength index series for
// the provided closes. Entry j corresponds to closes index period+j. A zero
// average loss saturates the index at 100 rather than leaving it undefined.
func rsiSeries(closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		return nil
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for idx := 1; idx < len(closes); idx++ {
		change := closes[idx] - closes[idx-1]
		if change > 0 {
			gains[idx-1] = change
		} else {
			losses[idx-1] = -change
		}
	}

	avgGains := wilderSeries(gains, period)
	avgLosses := wilderSeries(losses, period)

	out := make([]float64, len(avgGains))
	for idx := range avgGains {
		if avgLosses[idx] == 0 {
			out[idx] = 100
			continue
		}

		rs := avgGains[idx] / avgLosses[idx]
		out[idx] = 100 - 100/(1+rs)
	}

	return out
}

// computeRSI generates an RSI result for the provided period.
func computeRSI(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		rsi := rsiSeries(series.Closes(), period)
		if rsi == nil {
			return nil
		}

		value := last(rsi)
		vote := shared.Neutral
		switch {
		case value < oversoldRSI:
			vote = shared.Long
		case value > overboughtRSI:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(value-50)/50, value)
	}
}

// stochSeries returns the smoothed %K and %D stochastic oscillator series.
func stochSeries(series *shared.CandleSeries, period, smoothK, smoothD int) (k []float64, d []float64) {
	highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
	if len(closes) < period {
		return nil, nil
	}

	raw := make([]float64, 0, len(closes)-period+1)
	for idx := period - 1; idx < len(closes); idx++ {
		window := idx - period + 1
		hh := highest(highs[window : idx+1])
		ll := lowest(lows[window : idx+1])
		if hh == ll {
			// Flat window, centre the oscillator.
			raw = append(raw, 50)
			continue
		}
		raw = append(raw, (closes[idx]-ll)/(hh-ll)*100)
	}

	k = smaSeries(raw, smoothK)
	d = smaSeries(k, smoothD)

	return k, d
}

// computeStochastic generates a stochastic %K/%D crossover result. Only
// crossovers in the lower or upper third of the range vote.
func computeStochastic(name string, period, smoothK, smoothD int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		k, d := stochSeries(series, period, smoothK, smoothD)
		if len(k) < 2 || len(d) < 2 {
			return nil
		}

		kNow, dNow := last(k), last(d)
		kPrev, dPrev := k[len(k)-2], d[len(d)-2]

		vote := shared.Neutral
		switch {
		case kPrev <= dPrev && kNow > dNow && kNow < stochLowerThird:
			vote = shared.Long
		case kPrev >= dPrev && kNow < dNow && kNow > stochUpperThird:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(kNow-50)/50, kNow, dNow)
	}
}

// computeStochRSI generates a stochastic RSI result: the stochastic
// oscillator applied to the RSI series instead of price.
func computeStochRSI(name string, rsiPeriod, stochPeriod, smoothK, smoothD int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		rsi := rsiSeries(series.Closes(), rsiPeriod)
		if len(rsi) < stochPeriod {
			return nil
		}

		raw := make([]float64, 0, len(rsi)-stochPeriod+1)
		for idx := stochPeriod - 1; idx < len(rsi); idx++ {
			window := idx - stochPeriod + 1
			hh := highest(rsi[window : idx+1])
			ll := lowest(rsi[window : idx+1])
			if hh == ll {
				raw = append(raw, 50)
				continue
			}
			raw = append(raw, (rsi[idx]-ll)/(hh-ll)*100)
		}

		k := smaSeries(raw, smoothK)
		d := smaSeries(k, smoothD)
		if len(k) == 0 || len(d) == 0 {
			return nil
		}

		kNow, dNow := last(k), last(d)
		vote := shared.Neutral
		switch {
		case kNow < 20 && dNow < 20:
			vote = shared.Long
		case kNow > 80 && dNow > 80:
			vote = shared.Short
		}

		return newResult(name, shared.Composite, vote, math.Abs(kNow-50)/50, kNow, dNow)
	}
}

// computeCCI generates a commodity channel index result.
func computeCCI(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		tp := typicalPrices(series.Highs(), series.Lows(), series.Closes())
		if len(tp) < period {
			return nil
		}

		window := tp[len(tp)-period:]
		mean := last(smaSeries(window, period))
		mad := meanAbsDeviation(window, mean)
		if mad == 0 {
			return newResult(name, shared.Momentum, shared.Neutral, 0, 0)
		}

		cci := (last(tp) - mean) / (0.015 * mad)
		vote := shared.Neutral
		switch {
		case cci < -100:
			vote = shared.Long
		case cci > 100:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, clampUnit(math.Abs(cci)/200), cci)
	}
}

// computeWilliamsR generates a Williams %R result.
func computeWilliamsR(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < period {
			return nil
		}

		hh := highest(highs[len(highs)-period:])
		ll := lowest(lows[len(lows)-period:])
		if hh == ll {
			return newResult(name, shared.Momentum, shared.Neutral, 0, -50)
		}

		r := (hh - last(closes)) / (hh - ll) * -100
		vote := shared.Neutral
		switch {
		case r < -80:
			vote = shared.Long
		case r > -20:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(r+50)/50, r)
	}
}

// computeMomentum generates a price momentum result.
func computeMomentum(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		if len(closes) < period+1 {
			return nil
		}

		mom := last(closes) - closes[len(closes)-1-period]
		vote := shared.Neutral
		switch {
		case mom > 0:
			vote = shared.Long
		case mom < 0:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, clampUnit(math.Abs(mom)/last(closes)), mom)
	}
}

// computeROC generates a rate of change result.
func computeROC(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		if len(closes) < period+1 {
			return nil
		}

		base := closes[len(closes)-1-period]
		roc := (last(closes) - base) / base * 100
		vote := shared.Neutral
		switch {
		case roc > 0:
			vote = shared.Long
		case roc < 0:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(roc)/100, roc)
	}
}

// computeTSI generates a true strength index result: double exponential
// smoothing of price momentum.
func computeTSI(name string, slow, fast int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		if len(closes) < slow+fast+1 {
			return nil
		}

		momentum := make([]float64, len(closes)-1)
		absMomentum := make([]float64, len(closes)-1)
		for idx := 1; idx < len(closes); idx++ {
			momentum[idx-1] = closes[idx] - closes[idx-1]
			absMomentum[idx-1] = math.Abs(momentum[idx-1])
		}

		numerator := emaSeries(emaSeries(momentum, slow), fast)
		denominator := emaSeries(emaSeries(absMomentum, slow), fast)
		if len(numerator) == 0 || last(denominator) == 0 {
			return newResult(name, shared.Momentum, shared.Neutral, 0, 0)
		}

		tsi := 100 * last(numerator) / last(denominator)
		vote := shared.Neutral
		switch {
		case tsi > 0:
			vote = shared.Long
		case tsi < 0:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(tsi)/100, tsi)
	}
}

// computeUltimateOscillator generates an ultimate oscillator result across
// three weighted lookback windows.
func computeUltimateOscillator(name string, short, medium, long int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		if len(closes) < long+1 {
			return nil
		}

		buyingPressure := make([]float64, len(closes)-1)
		ranges := make([]float64, len(closes)-1)
		for idx := 1; idx < len(closes); idx++ {
			trueLow := math.Min(lows[idx], closes[idx-1])
			trueHigh := math.Max(highs[idx], closes[idx-1])
			buyingPressure[idx-1] = closes[idx] - trueLow
			ranges[idx-1] = trueHigh - trueLow
		}

		average := func(period int) float64 {
			var bp, tr float64
			for idx := len(buyingPressure) - period; idx < len(buyingPressure); idx++ {
				bp += buyingPressure[idx]
				tr += ranges[idx]
			}
			if tr == 0 {
				return 0.5
			}
			return bp / tr
		}

		uo := 100 * (4*average(short) + 2*average(medium) + average(long)) / 7
		vote := shared.Neutral
		switch {
		case uo < 30:
			vote = shared.Long
		case uo > 70:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, math.Abs(uo-50)/50, uo)
	}
}

// macdSeries returns the MACD line and signal line series for the provided
// closes. Both are aligned to the end of the series.
func macdSeries(closes []float64, fast, slow, signal int) (line []float64, signalLine []float64) {
	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)
	if len(slowEMA) == 0 {
		return nil, nil
	}

	offset := len(fastEMA) - len(slowEMA)
	line = make([]float64, len(slowEMA))
	for idx := range slowEMA {
		line[idx] = fastEMA[idx+offset] - slowEMA[idx]
	}

	signalLine = emaSeries(line, signal)

	return line, signalLine
}

// computeMACD generates a MACD result. The vote reads which side of zero the
// line holds, which is the side the fast average has crossed the slow one to.
// The signal line read alone misleads on steady trends, where the line decays
// toward zero and sits above its own average; the histogram is still carried
// for inspection.
func computeMACD(name string, fast, slow, signal int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		line, signalLine := macdSeries(series.Closes(), fast, slow, signal)
		if len(signalLine) == 0 {
			return nil
		}

		lineNow, signalNow := last(line), last(signalLine)
		histogram := lineNow - signalNow
		vote := shared.Neutral
		switch {
		case lineNow > 0:
			vote = shared.Long
		case lineNow < 0:
			vote = shared.Short
		}

		conviction := clampUnit(math.Abs(lineNow) / last(series.Closes()))

		return newResult(name, shared.Momentum, vote, conviction, lineNow, signalNow, histogram)
	}
}

// computePPO generates a percentage price oscillator result, the MACD
// normalized by the slow moving average.
func computePPO(name string, fast, slow, signal int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes := series.Closes()
		fastEMA := emaSeries(closes, fast)
		slowEMA := emaSeries(closes, slow)
		if len(slowEMA) == 0 {
			return nil
		}

		offset := len(fastEMA) - len(slowEMA)
		ppo := make([]float64, len(slowEMA))
		for idx := range slowEMA {
			if slowEMA[idx] == 0 {
				return nil
			}
			ppo[idx] = (fastEMA[idx+offset] - slowEMA[idx]) / slowEMA[idx] * 100
		}

		signalLine := emaSeries(ppo, signal)
		if len(signalLine) == 0 {
			return nil
		}

		// Same zero-line read as the MACD vote.
		ppoNow := last(ppo)
		histogram := ppoNow - last(signalLine)
		vote := shared.Neutral
		switch {
		case ppoNow > 0:
			vote = shared.Long
		case ppoNow < 0:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, clampUnit(math.Abs(ppoNow)),
			ppoNow, last(signalLine), histogram)
	}
}

// computeTRIX generates a TRIX result: the one-period rate of change of a
// triple-smoothed exponential moving average.
func computeTRIX(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		triple := emaSeries(emaSeries(emaSeries(series.Closes(), period), period), period)
		if len(triple) < 2 {
			return nil
		}

		prev := triple[len(triple)-2]
		if prev == 0 {
			return nil
		}

		trix := (last(triple) - prev) / prev * 100
		vote := shared.Neutral
		switch {
		case trix > 0:
			vote = shared.Long
		case trix < 0:
			vote = shared.Short
		}

		return newResult(name, shared.Momentum, vote, clampUnit(math.Abs(trix)), trix)
	}
}

// momentumIndicators returns the momentum family catalog entries.
func momentumIndicators() []Indicator {
	return []Indicator{
		{Name: "rsi_6", Category: shared.Momentum, MinHistory: 7, Compute: computeRSI("rsi_6", 6)},
		{Name: "rsi_14", Category: shared.Momentum, MinHistory: 15, Compute: computeRSI("rsi_14", 14)},
		{Name: "rsi_21", Category: shared.Momentum, MinHistory: 22, Compute: computeRSI("rsi_21", 21)},
		{Name: "stochastic_14_3", Category: shared.Momentum, MinHistory: 20, Compute: computeStochastic("stochastic_14_3", 14, 3, 3)},
		{Name: "stoch_rsi_14", Category: shared.Composite, MinHistory: 35, Compute: computeStochRSI("stoch_rsi_14", 14, 14, 3, 3)},
		{Name: "cci_14", Category: shared.Momentum, MinHistory: 14, Compute: computeCCI("cci_14", 14)},
		{Name: "cci_20", Category: shared.Momentum, MinHistory: 20, Compute: computeCCI("cci_20", 20)},
		{Name: "williams_r_14", Category: shared.Momentum, MinHistory: 14, Compute: computeWilliamsR("williams_r_14", 14)},
		{Name: "williams_r_20", Category: shared.Momentum, MinHistory: 20, Compute: computeWilliamsR("williams_r_20", 20)},
		{Name: "momentum_10", Category: shared.Momentum, MinHistory: 11, Compute: computeMomentum("momentum_10", 10)},
		{Name: "momentum_14", Category: shared.Momentum, MinHistory: 15, Compute: computeMomentum("momentum_14", 14)},
		{Name: "roc_10", Category: shared.Momentum, MinHistory: 11, Compute: computeROC("roc_10", 10)},
		{Name: "roc_14", Category: shared.Momentum, MinHistory: 15, Compute: computeROC("roc_14", 14)},
		{Name: "tsi_25_13", Category: shared.Momentum, MinHistory: 40, Compute: computeTSI("tsi_25_13", 25, 13)},
		{Name: "ultimate_7_14_28", Category: shared.Momentum, MinHistory: 30, Compute: computeUltimateOscillator("ultimate_7_14_28", 7, 14, 28)},
		{Name: "macd_12_26", Category: shared.Momentum, MinHistory: 35, Compute: computeMACD("macd_12_26", 12, 26, 9)},
		{Name: "ppo_12_26", Category: shared.Momentum, MinHistory: 35, Compute: computePPO("ppo_12_26", 12, 26, 9)},
		{Name: "trix_14", Category: shared.Momentum, MinHistory: 42, Compute: computeTRIX("trix_14", 14)},
		{Name: "trix_30", Category: shared.Momentum, MinHistory: 90, Compute: computeTRIX("trix_30", 30)},
	}
}
