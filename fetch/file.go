package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dnldd/quorum/shared"
	"github.com/tidwall/gjson"
)

// FileSourceConfig represents the file data source configuration.
type FileSourceConfig struct {
	// Market represents the market covered by the data file.
	Market string
	// Timeframe represents the timeframe of the data file.
	Timeframe shared.Timeframe
	// FilePath is the filepath to the market data.
	FilePath string
}

// FileSource serves candle history from a json data file, newest candles
// last. It backs evaluations on canned data where no exchange is reachable.
type FileSource struct {
	cfg     *FileSourceConfig
	candles []shared.Candlestick
}

// Ensure the FileSource implements the CandleFetcher interface.
var _ shared.CandleFetcher = (*FileSource)(nil)

// ParseCandlesticks parses candlesticks from the provided json data.
func ParseCandlesticks(data []gjson.Result, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	candles := make([]shared.Candlestick, len(data))

	for idx := range data {
		var candle shared.Candlestick

		candle.Open = data[idx].Get("open").Float()
		candle.Low = data[idx].Get("low").Float()
		candle.High = data[idx].Get("high").Float()
		candle.Close = data[idx].Get("close").Float()
		candle.Volume = data[idx].Get("volume").Float()

		candle.Market = market
		candle.Timeframe = timeframe

		dt, err := time.Parse(shared.DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing candlestick date: %w", err)
		}

		candle.Date = dt
		candles[idx] = candle
	}

	return candles, nil
}

// NewFileSource initializes a new file data source.
func NewFileSource(cfg *FileSourceConfig) (*FileSource, error) {
	readb, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reading market data from file with path '%s': %v", cfg.FilePath, err)
	}

	data := gjson.ParseBytes(readb).Array()
	candles, err := ParseCandlesticks(data, cfg.Market, cfg.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("parsing candlesticks: %v", err)
	}

	return &FileSource{
		cfg:     cfg,
		candles: candles,
	}, nil
}

// FetchCandles returns up to limit of the most recent candlesticks from the
// data file, ordered oldest first.
func (f *FileSource) FetchCandles(_ context.Context, market string, timeframe shared.Timeframe, limit int) ([]shared.Candlestick, error) {
	if market != f.cfg.Market || timeframe != f.cfg.Timeframe {
		return nil, fmt.Errorf("file source covers %s %s, not %s %s",
			f.cfg.Market, f.cfg.Timeframe, market, timeframe)
	}

	candles := f.candles
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	out := make([]shared.Candlestick, len(candles))
	copy(out, candles)

	return out, nil
}
