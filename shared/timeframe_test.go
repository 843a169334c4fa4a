package shared

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestParseTimeframe(t *testing.T) {
	// Ensure every supported timeframe round trips through its string form.
	for _, timeframe := range Timeframes() {
		parsed, err := ParseTimeframe(timeframe.String())
		assert.NoError(t, err)
		assert.Equal(t, parsed, timeframe)
	}

	// Ensure an unsupported timeframe errors.
	_, err := ParseTimeframe("3m")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTimeframe))
}

func TestTimeframeString(t *testing.T) {
	tests := []struct {
		timeframe Timeframe
		want      string
	}{
		{OneMinute, "1m"},
		{FiveMinute, "5m"},
		{FifteenMinute, "15m"},
		{ThirtyMinute, "30m"},
		{OneHour, "1h"},
		{FourHour, "4h"},
		{OneDay, "1d"},
		{OneWeek, "1w"},
		{Timeframe(99), "unknown"},
	}

	for _, test := range tests {
		if test.timeframe.String() != test.want {
			t.Errorf("expected %s, got %s", test.want, test.timeframe.String())
		}
	}
}

func TestDirectionAndConfidenceStrings(t *testing.T) {
	assert.Equal(t, Long.String(), "LONG")
	assert.Equal(t, Short.String(), "SHORT")
	assert.Equal(t, Neutral.String(), "NEUTRAL")

	assert.Equal(t, HighConfidence.String(), "HIGH")
	assert.Equal(t, MediumConfidence.String(), "MEDIUM")
	assert.Equal(t, LowConfidence.String(), "LOW")
}
