package indicator

import (
	"testing"

	"github.com/dnldd/quorum/shared"
	"github.com/peterldowns/testy/assert"
)

func TestMAPairVote(t *testing.T) {
	tests := []struct {
		name  string
		short float64
		long  float64
		want  shared.Direction
	}{
		{"short above long", 105, 100, shared.Long},
		{"short below long", 95, 100, shared.Short},
		{"short equals long", 100, 100, shared.Neutral},
	}

	for _, test := range tests {
		result := maPairVote("sma_20_50", shared.MovingAverage, test.short, test.long)
		if result.Vote != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, result.Vote)
		}
	}
}

func TestMAPriceVote(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		ma    float64
		want  shared.Direction
	}{
		{"close above average", 105, 100, shared.Long},
		{"close below average", 95, 100, shared.Short},
		{"close on average", 100, 100, shared.Neutral},
	}

	for _, test := range tests {
		result := maPriceVote("wma_20", shared.MovingAverage, test.close, test.ma)
		if result.Vote != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, result.Vote)
		}
	}
}

func TestMASlopeVote(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     shared.Direction
	}{
		{"average rising", 105, 100, shared.Long},
		{"average falling", 95, 100, shared.Short},
		{"average flat", 100, 100, shared.Neutral},
	}

	for _, test := range tests {
		result := maSlopeVote("dema_9", shared.MovingAverage, test.current, test.previous)
		if result.Vote != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, result.Vote)
		}
	}
}

func TestLagCompensatedAveragesOnDecline(t *testing.T) {
	// On a compounding decline the lag compensation overshoots below price,
	// so the close sits above the average; the slope read still votes with
	// the decline.
	falling := fallingSeries(t, 60, 100, 0.5)

	dema := demaSeries(falling.Closes(), 9)
	assert.True(t, len(dema) >= 2)
	assert.True(t, falling.Last().Close > last(dema))

	result := computeMASlope("dema_9", demaSeries, 9)(falling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Short)

	result = computeMASlopePair("zlema_12_26", zlemaSeries, 12, 26)(falling)
	assert.NotEqual(t, result, nil)
	assert.Equal(t, result.Vote, shared.Short)
}

func TestMovingAveragesFollowTrend(t *testing.T) {
	// Every moving average entry tracks a steady trend: the lagging entries
	// through price and pair position, the lag-compensated entries through
	// their own slope.
	rising := risingSeries(t, 60, 100, 0.5)
	falling := fallingSeries(t, 60, 100, 0.5)

	for _, entry := range movingAverageIndicators() {
		result := entry.Compute(rising)
		if result == nil || result.Vote != shared.Long {
			t.Errorf("%s: expected LONG on rising series, got %v", entry.Name, result)
		}

		result = entry.Compute(falling)
		if result == nil || result.Vote != shared.Short {
			t.Errorf("%s: expected SHORT on falling series, got %v", entry.Name, result)
		}
	}
}

func TestMASeriesAlignment(t *testing.T) {
	vals := make([]float64, 60)
	for idx := range vals {
		vals[idx] = float64(idx + 1)
	}

	// Ensure the derived series helpers produce values tracking the tail of
	// a linear ramp.
	tests := []struct {
		name   string
		series []float64
	}{
		{"dema", demaSeries(vals, 9)},
		{"tema", temaSeries(vals, 9)},
		{"zlema", zlemaSeries(vals, 12)},
		{"tma", tmaSeries(vals, 20)},
		{"hma", hmaSeries(vals, 21)},
	}

	for _, test := range tests {
		if len(test.series) == 0 {
			t.Errorf("%s: expected a series, got none", test.name)
			continue
		}

		got := last(test.series)
		if got < 40 || got > 61 {
			t.Errorf("%s: expected a value tracking the ramp tail, got %v", test.name, got)
		}
	}
}
