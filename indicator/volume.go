package indicator

import (
	"math"

	"github.com/dnldd/quorum/shared"
)

const (
	// cmfThreshold is the chaikin money flow level below which flow is
	// considered noise.
	cmfThreshold = 0.05
	// bopThreshold is the smoothed balance of power level below which
	// neither side is considered in control.
	bopThreshold = 0.1
	// flowSlopeSpan is the trailing span used to read the slope of
	// cumulative flow lines.
	flowSlopeSpan = 10
)

// moneyFlowMultipliers returns the close location value series: where each
// close sits within its candle range, in [-1, 1]. Flat candles yield zero.
func moneyFlowMultipliers(highs []float64, lows []float64, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for idx := range closes {
		if span := highs[idx] - lows[idx]; span != 0 {
			out[idx] = ((closes[idx] - lows[idx]) - (highs[idx] - closes[idx])) / span
		}
	}

	return out
}

// flowSlopeVote derives a directional vote from the trailing slope of a
// cumulative flow line, normalizing conviction by the line's trailing scale.
func flowSlopeVote(name string, line []float64) *shared.IndicatorResult {
	if len(line) < flowSlopeSpan+1 {
		return nil
	}

	current := last(line)
	prior := line[len(line)-1-flowSlopeSpan]
	delta := current - prior

	vote := shared.Neutral
	switch {
	case delta > 0:
		vote = shared.Long
	case delta < 0:
		vote = shared.Short
	}

	conviction := float64(0)
	if scale := math.Max(math.Abs(current), math.Abs(prior)); scale != 0 {
		conviction = clampUnit(math.Abs(delta) / scale)
	}

	return newResult(name, shared.VolumeCategory, vote, conviction, current)
}

// computeMFI generates a money flow index result: a volume-weighted momentum
// oscillator read at oversold/overbought extremes. A window with no negative
// flow saturates the index at 100.
func computeMFI(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		volumes := series.Volumes()
		if len(closes) < period+1 {
			return nil
		}

		typical := typicalPrices(highs, lows, closes)
		var positive, negative float64
		for idx := len(typical) - period; idx < len(typical); idx++ {
			flow := typical[idx] * volumes[idx]
			switch {
			case typical[idx] > typical[idx-1]:
				positive += flow
			case typical[idx] < typical[idx-1]:
				negative += flow
			}
		}

		mfi := float64(100)
		if negative != 0 {
			mfi = 100 - 100/(1+positive/negative)
		}

		vote := shared.Neutral
		switch {
		case mfi < 20:
			vote = shared.Long
		case mfi > 80:
			vote = shared.Short
		}

		return newResult(name, shared.VolumeCategory, vote, math.Abs(mfi-50)/50, mfi)
	}
}

// computeCMF generates a chaikin money flow result: volume-weighted close
// location averaged over the period.
func computeCMF(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		volumes := series.Volumes()
		if len(closes) < period {
			return nil
		}

		multipliers := moneyFlowMultipliers(highs, lows, closes)
		var flowVolume, volume float64
		for idx := len(closes) - period; idx < len(closes); idx++ {
			flowVolume += multipliers[idx] * volumes[idx]
			volume += volumes[idx]
		}

		if volume == 0 {
			return newResult(name, shared.VolumeCategory, shared.Neutral, 0, 0)
		}

		cmf := flowVolume / volume
		vote := shared.Neutral
		switch {
		case cmf > cmfThreshold:
			vote = shared.Long
		case cmf < -cmfThreshold:
			vote = shared.Short
		}

		return newResult(name, shared.VolumeCategory, vote, clampUnit(math.Abs(cmf)), cmf)
	}
}

// computeOBV generates an on-balance volume result voting on the trailing
// slope of the cumulative line.
func computeOBV(name string) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes, volumes := series.Closes(), series.Volumes()
		line := make([]float64, len(closes))
		for idx := 1; idx < len(closes); idx++ {
			line[idx] = line[idx-1]
			switch {
			case closes[idx] > closes[idx-1]:
				line[idx] += volumes[idx]
			case closes[idx] < closes[idx-1]:
				line[idx] -= volumes[idx]
			}
		}

		return flowSlopeVote(name, line)
	}
}

// computeAD generates an accumulation/distribution line result voting on the
// trailing slope of the cumulative line.
func computeAD(name string) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		volumes := series.Volumes()
		multipliers := moneyFlowMultipliers(highs, lows, closes)
		line := make([]float64, len(closes))
		for idx := range closes {
			line[idx] = multipliers[idx] * volumes[idx]
			if idx > 0 {
				line[idx] += line[idx-1]
			}
		}

		return flowSlopeVote(name, line)
	}
}

// computeVPT generates a volume price trend result voting on the trailing
// slope of the cumulative line.
func computeVPT(name string) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes, volumes := series.Closes(), series.Volumes()
		line := make([]float64, len(closes))
		for idx := 1; idx < len(closes); idx++ {
			line[idx] = line[idx-1]
			if closes[idx-1] != 0 {
				line[idx] += volumes[idx] * (closes[idx] - closes[idx-1]) / closes[idx-1]
			}
		}

		return flowSlopeVote(name, line)
	}
}

// computeForceIndex generates a force index result: an EMA of price change
// scaled by volume, voting on its sign.
func computeForceIndex(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes, volumes := series.Closes(), series.Volumes()
		if len(closes) < period+1 {
			return nil
		}

		raw := make([]float64, len(closes)-1)
		for idx := 1; idx < len(closes); idx++ {
			raw[idx-1] = (closes[idx] - closes[idx-1]) * volumes[idx]
		}

		smoothed := emaSeries(raw, period)
		if len(smoothed) == 0 {
			return nil
		}

		force := last(smoothed)
		vote := shared.Neutral
		switch {
		case force > 0:
			vote = shared.Long
		case force < 0:
			vote = shared.Short
		}

		conviction := float64(0)
		if scale := last(closes) * last(volumes); scale != 0 {
			conviction = clampUnit(math.Abs(force) / scale)
		}

		return newResult(name, shared.VolumeCategory, vote, conviction, force)
	}
}

// computeBOP generates a balance of power result: close-versus-open strength
// within each candle range, smoothed over the period.
func computeBOP(name string, period int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		opens, highs := series.Opens(), series.Highs()
		lows, closes := series.Lows(), series.Closes()
		if len(closes) < period {
			return nil
		}

		raw := make([]float64, len(closes))
		for idx := range closes {
			if span := highs[idx] - lows[idx]; span != 0 {
				raw[idx] = (closes[idx] - opens[idx]) / span
			}
		}

		bop := last(smaSeries(raw, period))
		vote := shared.Neutral
		switch {
		case bop > bopThreshold:
			vote = shared.Long
		case bop < -bopThreshold:
			vote = shared.Short
		}

		return newResult(name, shared.VolumeCategory, vote, clampUnit(math.Abs(bop)), bop)
	}
}

// computeVolumeOscillator generates a volume oscillator result: the
// percentage spread between a fast and slow volume average. Expanding volume
// confirms the recent price direction, contracting volume casts no vote.
func computeVolumeOscillator(name string, fast, slow int) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		closes, volumes := series.Closes(), series.Volumes()
		if len(volumes) < slow+1 {
			return nil
		}

		fastAvg := last(smaSeries(volumes, fast))
		slowAvg := last(smaSeries(volumes, slow))
		if slowAvg == 0 {
			return newResult(name, shared.VolumeCategory, shared.Neutral, 0, 0)
		}

		osc := (fastAvg - slowAvg) / slowAvg * 100
		change := last(closes) - closes[len(closes)-1-fast]

		vote := shared.Neutral
		if osc > 0 {
			switch {
			case change > 0:
				vote = shared.Long
			case change < 0:
				vote = shared.Short
			}
		}

		return newResult(name, shared.VolumeCategory, vote, clampUnit(math.Abs(osc)/100), osc)
	}
}

// computeVWAP generates a volume weighted average price result comparing the
// close against the volume weighted average over the full series.
func computeVWAP(name string) ComputeFunc {
	return func(series *shared.CandleSeries) *shared.IndicatorResult {
		highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
		volumes := series.Volumes()

		typical := typicalPrices(highs, lows, closes)
		var weighted, volume float64
		for idx := range typical {
			weighted += typical[idx] * volumes[idx]
			volume += volumes[idx]
		}

		if volume == 0 {
			return newResult(name, shared.VolumeCategory, shared.Neutral, 0, 0)
		}

		vwap := weighted / volume
		close := last(closes)
		vote := shared.Neutral
		switch {
		case close > vwap:
			vote = shared.Long
		case close < vwap:
			vote = shared.Short
		}

		return newResult(name, shared.VolumeCategory, vote, clampUnit(math.Abs(close-vwap)/vwap), vwap)
	}
}

// volumeIndicators returns the volume family catalog entries.
func volumeIndicators() []Indicator {
	return []Indicator{
		{Name: "mfi_14", Category: shared.VolumeCategory, MinHistory: 15, Compute: computeMFI("mfi_14", 14)},
		{Name: "cmf_20", Category: shared.VolumeCategory, MinHistory: 20, Compute: computeCMF("cmf_20", 20)},
		{Name: "obv", Category: shared.VolumeCategory, MinHistory: 11, Compute: computeOBV("obv")},
		{Name: "ad_line", Category: shared.VolumeCategory, MinHistory: 11, Compute: computeAD("ad_line")},
		{Name: "vpt", Category: shared.VolumeCategory, MinHistory: 11, Compute: computeVPT("vpt")},
		{Name: "force_index_13", Category: shared.VolumeCategory, MinHistory: 15, Compute: computeForceIndex("force_index_13", 13)},
		{Name: "bop_14", Category: shared.VolumeCategory, MinHistory: 14, Compute: computeBOP("bop_14", 14)},
		{Name: "volume_osc_5_20", Category: shared.VolumeCategory, MinHistory: 21, Compute: computeVolumeOscillator("volume_osc_5_20", 5, 20)},
		{Name: "vwap", Category: shared.VolumeCategory, MinHistory: 10, Compute: computeVWAP("vwap")},
	}
}
