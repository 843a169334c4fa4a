package engine

import (
	"testing"

	"github.com/dnldd/quorum/shared"
	"github.com/peterldowns/testy/assert"
)

func TestTallyDirection(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  shared.Direction
	}{
		{
			name:  "empty tally",
			tally: Tally{},
			want:  shared.Neutral,
		},
		{
			name:  "long at exact quorum",
			tally: Tally{Long: 6, Short: 2, Neutral: 2},
			want:  shared.Long,
		},
		{
			name:  "long just under quorum",
			tally: Tally{Long: 5, Short: 3, Neutral: 2},
			want:  shared.Neutral,
		},
		{
			name:  "short at exact quorum",
			tally: Tally{Long: 1, Short: 9, Neutral: 5},
			want:  shared.Short,
		},
		{
			name:  "neutral votes dilute a majority",
			tally: Tally{Long: 10, Short: 0, Neutral: 8},
			want:  shared.Neutral,
		},
		{
			name:  "unanimous long",
			tally: Tally{Long: 4},
			want:  shared.Long,
		},
	}

	for _, test := range tests {
		got := test.tally.Direction()
		if got != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, got)
		}
	}
}

func TestTallyConfidence(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  shared.Confidence
	}{
		{
			name:  "fifteen considered is high",
			tally: Tally{Long: 10, Short: 3, Neutral: 2},
			want:  shared.HighConfidence,
		},
		{
			name:  "fourteen considered is medium",
			tally: Tally{Long: 10, Short: 2, Neutral: 2},
			want:  shared.MediumConfidence,
		},
		{
			name:  "eight considered is medium",
			tally: Tally{Long: 8},
			want:  shared.MediumConfidence,
		},
		{
			name:  "seven considered is low",
			tally: Tally{Long: 7},
			want:  shared.LowConfidence,
		},
		{
			name:  "empty tally is low",
			tally: Tally{},
			want:  shared.LowConfidence,
		},
	}

	for _, test := range tests {
		got := test.tally.Confidence()
		if got != test.want {
			t.Errorf("%s: expected %s, got %s", test.name, test.want, got)
		}
	}
}

func TestTallyVotes(t *testing.T) {
	results := []*shared.IndicatorResult{
		{Name: "a", Vote: shared.Long},
		{Name: "b", Vote: shared.Long},
		{Name: "c", Vote: shared.Short},
		{Name: "d", Vote: shared.Neutral},
	}

	tally := tallyVotes(results)
	assert.Equal(t, tally.Long, 2)
	assert.Equal(t, tally.Short, 1)
	assert.Equal(t, tally.Neutral, 1)
	assert.Equal(t, tally.Considered(), 4)
}

func TestRankContributors(t *testing.T) {
	results := []*shared.IndicatorResult{
		{Name: "f", Vote: shared.Long, Conviction: 0.2},
		{Name: "a", Vote: shared.Long, Conviction: 0.9},
		{Name: "b", Vote: shared.Short, Conviction: 0.95},
		{Name: "c", Vote: shared.Long, Conviction: 0.5},
		{Name: "e", Vote: shared.Long, Conviction: 0.5},
		{Name: "d", Vote: shared.Long, Conviction: 0.7},
		{Name: "g", Vote: shared.Long, Conviction: 0.1},
	}

	// Ensure only aligned votes rank, ordered by conviction with name as
	// the tie break, capped at five.
	contributors := rankContributors(results, shared.Long)
	assert.Equal(t, len(contributors), 5)
	assert.Equal(t, contributors[0].Name, "a")
	assert.Equal(t, contributors[1].Name, "d")
	assert.Equal(t, contributors[2].Name, "c")
	assert.Equal(t, contributors[3].Name, "e")
	assert.Equal(t, contributors[4].Name, "f")

	// Ensure a neutral consensus ranks across all results.
	contributors = rankContributors(results, shared.Neutral)
	assert.Equal(t, len(contributors), 5)
	assert.Equal(t, contributors[0].Name, "b")
	assert.Equal(t, contributors[1].Name, "a")

	// Ensure fewer aligned results than the cap returns them all.
	contributors = rankContributors(results, shared.Short)
	assert.Equal(t, len(contributors), 1)
	assert.Equal(t, contributors[0].Name, "b")
}
