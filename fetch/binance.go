// Package fetch provides candle history sources: the binance spot API for
// live data and json files for canned data.
package fetch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/dnldd/quorum/shared"
)

// BinanceConfig represents the configuration for the binance client.
type BinanceConfig struct {
	// APIKey is the binance API key. Public market data needs no key.
	APIKey string
	// SecretKey is the binance API secret.
	SecretKey string
}

// BinanceClient fetches candle history from the binance spot API.
type BinanceClient struct {
	cfg    *BinanceConfig
	client *binance.Client
}

// Ensure the BinanceClient implements the CandleFetcher interface.
var _ shared.CandleFetcher = (*BinanceClient)(nil)

// NewBinanceClient instantiates a new binance client.
func NewBinanceClient(cfg *BinanceConfig) *BinanceClient {
	return &BinanceClient{
		cfg:    cfg,
		client: binance.NewClient(cfg.APIKey, cfg.SecretKey),
	}
}

// parseKline converts the provided kline into a candlestick.
func parseKline(kline *binance.Kline, market string, timeframe shared.Timeframe) (shared.Candlestick, error) {
	var candle shared.Candlestick
	var err error

	candle.Open, err = strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return candle, fmt.Errorf("parsing kline open: %w", err)
	}
	candle.High, err = strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return candle, fmt.Errorf("parsing kline high: %w", err)
	}
	candle.Low, err = strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return candle, fmt.Errorf("parsing kline low: %w", err)
	}
	candle.Close, err = strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return candle, fmt.Errorf("parsing kline close: %w", err)
	}
	candle.Volume, err = strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return candle, fmt.Errorf("parsing kline volume: %w", err)
	}

	candle.Date = time.UnixMilli(kline.OpenTime).UTC()
	candle.Market = market
	candle.Timeframe = timeframe

	return candle, nil
}

// FetchCandles fetches up to limit of the most recent candlesticks for the
// provided market and timeframe, ordered oldest first. The supported
// timeframe strings match binance kline intervals directly.
func (c *BinanceClient) FetchCandles(ctx context.Context, market string, timeframe shared.Timeframe, limit int) ([]shared.Candlestick, error) {
	klines, err := c.client.NewKlinesService().Symbol(market).
		Interval(timeframe.String()).Limit(limit).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s klines (%s): %w", market, timeframe, err)
	}

	candles := make([]shared.Candlestick, 0, len(klines))
	for idx := range klines {
		candle, err := parseKline(klines[idx], market, timeframe)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
