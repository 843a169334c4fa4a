package shared

import "context"

// CandleFetcher defines the requirements for fetching market candle history.
type CandleFetcher interface {
	// FetchCandles fetches up to limit of the most recent candlesticks for
	// the provided market and timeframe, ordered oldest first.
	FetchCandles(ctx context.Context, market string, timeframe Timeframe, limit int) ([]Candlestick, error)
}

// SignalNotifier defines the requirements for relaying emitted signals.
type SignalNotifier interface {
	// NotifySignal relays the provided signal for processing.
	NotifySignal(signal *Signal)
}
