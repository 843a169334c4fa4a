package shared

import "errors"

var (
	// ErrInvalidSeries is returned when a candle series fails validation.
	// The evaluation is rejected before any indicator runs.
	ErrInvalidSeries = errors.New("invalid candle series")

	// ErrUnknownTimeframe is returned when a timeframe has no risk profile
	// entry. It is never silently substituted with a default.
	ErrUnknownTimeframe = errors.New("unknown timeframe")
)
