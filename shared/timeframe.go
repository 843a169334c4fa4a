package shared

import (
	"fmt"
)

const (
	// DateLayout is the date format of market data timestamps.
	DateLayout = "2006-01-02 15:04:05"
)

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneMinute Timeframe = iota
	FiveMinute
	FifteenMinute
	ThirtyMinute
	OneHour
	FourHour
	OneDay
	OneWeek
)

// Timeframes returns all supported timeframes, ordered from shortest to longest.
func Timeframes() []Timeframe {
	return []Timeframe{OneMinute, FiveMinute, FifteenMinute, ThirtyMinute,
		OneHour, FourHour, OneDay, OneWeek}
}

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneMinute:
		return "1m"
	case FiveMinute:
		return "5m"
	case FifteenMinute:
		return "15m"
	case ThirtyMinute:
		return "30m"
	case OneHour:
		return "1h"
	case FourHour:
		return "4h"
	case OneDay:
		return "1d"
	case OneWeek:
		return "1w"
	default:
		return "unknown"
	}
}

// MarshalJSON marshals the timeframe into its string form.
func (t Timeframe) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// ParseTimeframe parses a timeframe from the provided string.
func ParseTimeframe(str string) (Timeframe, error) {
	for _, timeframe := range Timeframes() {
		if timeframe.String() == str {
			return timeframe, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownTimeframe, str)
}
