// Package indicator provides the technical indicator catalog: a fixed set of
// pure computations over candle series, each yielding one or more numerics
// and a directional vote.
package indicator

import (
	"github.com/dnldd/quorum/shared"
)

// ComputeFunc computes an indicator over the provided candle series. It
// returns nil when the series history is insufficient, which excludes the
// indicator from consensus without blocking the evaluation.
type ComputeFunc func(series *shared.CandleSeries) *shared.IndicatorResult

// Indicator represents a single catalog entry.
type Indicator struct {
	// Name uniquely identifies the indicator and its parameterization.
	Name string
	// Category is the indicator family.
	Category shared.Category
	// MinHistory is the minimum number of candles needed for a value.
	MinHistory int
	// Compute computes the indicator over a candle series.
	Compute ComputeFunc
}

// Catalog returns the full indicator catalog. Adding or removing an indicator
// is a data change here, not a control flow change anywhere else.
func Catalog() []Indicator {
	var catalog []Indicator
	catalog = append(catalog, momentumIndicators()...)
	catalog = append(catalog, movingAverageIndicators()...)
	catalog = append(catalog, trendIndicators()...)
	catalog = append(catalog, bandIndicators()...)
	catalog = append(catalog, volumeIndicators()...)

	return catalog
}

// newResult initializes an indicator result.
func newResult(name string, category shared.Category, vote shared.Direction,
	conviction float64, values ...float64) *shared.IndicatorResult {
	return &shared.IndicatorResult{
		Name:       name,
		Category:   category,
		Values:     values,
		Vote:       vote,
		Conviction: conviction,
	}
}
