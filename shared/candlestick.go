package shared

import (
	"fmt"
	"math"
	"time"
)

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64
	Date   time.Time

	// Metadata fields.
	Market    string
	Timeframe Timeframe
}

// Validate asserts the candlestick has sane price and volume values.
func (c *Candlestick) Validate() error {
	prices := []float64{c.Open, c.High, c.Low, c.Close}
	for _, price := range prices {
		if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
			return fmt.Errorf("candlestick prices must be finite and positive, got %v", price)
		}
	}

	if math.IsNaN(c.Volume) || math.IsInf(c.Volume, 0) || c.Volume < 0 {
		return fmt.Errorf("candlestick volume must be finite and non-negative, got %v", c.Volume)
	}

	bodyHigh := math.Max(c.Open, c.Close)
	bodyLow := math.Min(c.Open, c.Close)
	if c.High < bodyHigh || c.Low > bodyLow {
		return fmt.Errorf("candlestick high/low inconsistent with open/close: "+
			"high %v, low %v, open %v, close %v", c.High, c.Low, c.Open, c.Close)
	}

	return nil
}

// CandleSeries represents a validated, immutable ordered candlestick history.
// Once constructed it is only ever borrowed read-only.
type CandleSeries struct {
	candles []Candlestick

	// Per-field views, generated once at construction.
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewCandleSeries initializes a candle series from the provided candlesticks.
// The candlesticks are copied, so later mutation of the input slice does not
// affect the series.
func NewCandleSeries(candles []Candlestick) (*CandleSeries, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: no candlesticks provided", ErrInvalidSeries)
	}

	series := &CandleSeries{
		candles: make([]Candlestick, len(candles)),
		opens:   make([]float64, len(candles)),
		highs:   make([]float64, len(candles)),
		lows:    make([]float64, len(candles)),
		closes:  make([]float64, len(candles)),
		volumes: make([]float64, len(candles)),
	}
	copy(series.candles, candles)

	for idx := range series.candles {
		candle := &series.candles[idx]
		if err := candle.Validate(); err != nil {
			return nil, fmt.Errorf("%w: candle %d: %v", ErrInvalidSeries, idx, err)
		}

		if idx > 0 && !candle.Date.After(series.candles[idx-1].Date) {
			return nil, fmt.Errorf("%w: candle %d date %s does not advance past %s",
				ErrInvalidSeries, idx, candle.Date, series.candles[idx-1].Date)
		}

		series.opens[idx] = candle.Open
		series.highs[idx] = candle.High
		series.lows[idx] = candle.Low
		series.closes[idx] = candle.Close
		series.volumes[idx] = candle.Volume
	}

	return series, nil
}

// Len returns the number of candlesticks in the series.
func (s *CandleSeries) Len() int {
	return len(s.candles)
}

// At returns a copy of the candlestick at the provided index.
func (s *CandleSeries) At(idx int) Candlestick {
	return s.candles[idx]
}

// Last returns a copy of the most recent candlestick in the series.
func (s *CandleSeries) Last() Candlestick {
	return s.candles[len(s.candles)-1]
}

// Opens returns the open prices of the series. The returned slice is shared
// and must be treated as read-only.
func (s *CandleSeries) Opens() []float64 {
	return s.opens
}

// Highs returns the high prices of the series. The returned slice is shared
// and must be treated as read-only.
func (s *CandleSeries) Highs() []float64 {
	return s.highs
}

// Lows returns the low prices of the series. The returned slice is shared
// and must be treated as read-only.
func (s *CandleSeries) Lows() []float64 {
	return s.lows
}

// Closes returns the close prices of the series. The returned slice is shared
// and must be treated as read-only.
func (s *CandleSeries) Closes() []float64 {
	return s.closes
}

// Volumes returns the traded volumes of the series. The returned slice is
// shared and must be treated as read-only.
func (s *CandleSeries) Volumes() []float64 {
	return s.volumes
}
