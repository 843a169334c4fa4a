package shared

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func candle(open, high, low, close float64, date time.Time) Candlestick {
	return Candlestick{
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    100,
		Date:      date,
		Market:    "BTCUSDT",
		Timeframe: OneHour,
	}
}

func TestCandlestickValidate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		candle  Candlestick
		wantErr bool
	}{
		{
			name:    "valid candle",
			candle:  candle(10, 12, 9, 11, now),
			wantErr: false,
		},
		{
			name:    "zero price",
			candle:  candle(0, 12, 9, 11, now),
			wantErr: true,
		},
		{
			name:    "negative price",
			candle:  candle(10, 12, -9, 11, now),
			wantErr: true,
		},
		{
			name:    "nan price",
			candle:  candle(10, math.NaN(), 9, 11, now),
			wantErr: true,
		},
		{
			name:    "high below close",
			candle:  candle(10, 10.5, 9, 11, now),
			wantErr: true,
		},
		{
			name:    "low above open",
			candle:  candle(10, 12, 10.5, 11, now),
			wantErr: true,
		},
		{
			name: "negative volume",
			candle: Candlestick{Open: 10, High: 12, Low: 9, Close: 11,
				Volume: -1, Date: now},
			wantErr: true,
		},
	}

	for _, test := range tests {
		err := test.candle.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("%s: expected wantErr %v, got %v", test.name, test.wantErr, err)
		}
	}
}

func TestNewCandleSeries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Ensure an empty series is rejected.
	_, err := NewCandleSeries(nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSeries))

	// Ensure an invalid candle fails the series.
	_, err = NewCandleSeries([]Candlestick{candle(0, 12, 9, 11, now)})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSeries))

	// Ensure out of order dates fail the series.
	_, err = NewCandleSeries([]Candlestick{
		candle(10, 12, 9, 11, now.Add(time.Hour)),
		candle(11, 13, 10, 12, now),
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSeries))

	// Ensure duplicate dates fail the series.
	_, err = NewCandleSeries([]Candlestick{
		candle(10, 12, 9, 11, now),
		candle(11, 13, 10, 12, now),
	})
	assert.Error(t, err)

	// Ensure a valid series exposes its candles and per-field views.
	candles := []Candlestick{
		candle(10, 12, 9, 11, now),
		candle(11, 13, 10, 12, now.Add(time.Hour)),
	}
	series, err := NewCandleSeries(candles)
	assert.NoError(t, err)
	assert.Equal(t, series.Len(), 2)
	assert.Equal(t, series.Last().Close, float64(12))
	assert.Equal(t, series.At(0).Open, float64(10))
	assert.Equal(t, series.Opens(), []float64{10, 11})
	assert.Equal(t, series.Highs(), []float64{12, 13})
	assert.Equal(t, series.Lows(), []float64{9, 10})
	assert.Equal(t, series.Closes(), []float64{11, 12})
	assert.Equal(t, series.Volumes(), []float64{100, 100})

	// Ensure mutating the input slice does not affect the series.
	candles[0].Close = 999
	assert.Equal(t, series.At(0).Close, float64(11))
	assert.Equal(t, series.Closes()[0], float64(11))
}
