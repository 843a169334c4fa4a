package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnldd/quorum/shared"
	"github.com/peterldowns/testy/assert"
)

const testData = `[
	{"date": "2024-01-01 00:00:00", "open": 100, "high": 101, "low": 99, "close": 100.5, "volume": 1000},
	{"date": "2024-01-01 01:00:00", "open": 100.5, "high": 102, "low": 100, "close": 101.5, "volume": 1200},
	{"date": "2024-01-01 02:00:00", "open": 101.5, "high": 103, "low": 101, "close": 102.5, "volume": 900}
]`

func writeTestData(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	err := os.WriteFile(path, []byte(testData), 0o644)
	assert.NoError(t, err)

	return path
}

func TestNewFileSource(t *testing.T) {
	// Ensure a missing file errors.
	_, err := NewFileSource(&FileSourceConfig{
		Market:    "BTCUSDT",
		Timeframe: shared.OneHour,
		FilePath:  "missing.json",
	})
	assert.Error(t, err)

	src, err := NewFileSource(&FileSourceConfig{
		Market:    "BTCUSDT",
		Timeframe: shared.OneHour,
		FilePath:  writeTestData(t),
	})
	assert.NoError(t, err)

	// Ensure parsed candles carry prices, metadata and dates.
	candles, err := src.FetchCandles(context.Background(), "BTCUSDT", shared.OneHour, 0)
	assert.NoError(t, err)
	assert.Equal(t, len(candles), 3)
	assert.Equal(t, candles[0].Open, float64(100))
	assert.Equal(t, candles[0].Close, 100.5)
	assert.Equal(t, candles[0].Volume, float64(1000))
	assert.Equal(t, candles[0].Market, "BTCUSDT")
	assert.Equal(t, candles[0].Timeframe, shared.OneHour)
	assert.Equal(t, candles[0].Date, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// Ensure the limit keeps the most recent candles.
	candles, err = src.FetchCandles(context.Background(), "BTCUSDT", shared.OneHour, 2)
	assert.NoError(t, err)
	assert.Equal(t, len(candles), 2)
	assert.Equal(t, candles[0].Close, 101.5)

	// Ensure a mismatched market errors.
	_, err = src.FetchCandles(context.Background(), "ETHUSDT", shared.OneHour, 0)
	assert.Error(t, err)

	// Ensure a mismatched timeframe errors.
	_, err = src.FetchCandles(context.Background(), "BTCUSDT", shared.OneDay, 0)
	assert.Error(t, err)
}

func TestParseCandlesticksBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	err := os.WriteFile(path, []byte(`[{"date": "January 1st", "open": 1, "high": 1, "low": 1, "close": 1, "volume": 1}]`), 0o644)
	assert.NoError(t, err)

	_, err = NewFileSource(&FileSourceConfig{
		Market:    "BTCUSDT",
		Timeframe: shared.OneHour,
		FilePath:  path,
	})
	assert.Error(t, err)
}
