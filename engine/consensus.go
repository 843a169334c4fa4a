package engine

import (
	"sort"

	"github.com/dnldd/quorum/shared"
)

const (
	// quorumFraction is the fraction of considered votes a side must carry
	// to establish a directional consensus.
	quorumFraction = float64(0.6)
	// highConfidenceCount is the minimum number of considered indicators
	// for a high confidence read.
	highConfidenceCount = 15
	// mediumConfidenceCount is the minimum number of considered indicators
	// for a medium confidence read.
	mediumConfidenceCount = 8
	// maxContributors is the number of indicators surfaced on a signal.
	maxContributors = 5
)

// Tally represents the vote breakdown of a consensus evaluation.
type Tally struct {
	// Long is the number of bullish votes.
	Long int
	// Short is the number of bearish votes.
	Short int
	// Neutral is the number of sidelined votes.
	Neutral int
}

// Considered returns the total number of votes in the tally. Neutral votes
// count toward the denominator, so sidelined indicators dilute a quorum
// rather than being ignored.
func (t *Tally) Considered() int {
	return t.Long + t.Short + t.Neutral
}

// Direction returns the consensus direction of the tally. A side must carry
// at least the quorum fraction of all considered votes, otherwise the
// consensus is neutral. An empty tally is neutral.
func (t *Tally) Direction() shared.Direction {
	considered := t.Considered()
	if considered == 0 {
		return shared.Neutral
	}

	quorum := quorumFraction * float64(considered)
	switch {
	case float64(t.Long) >= quorum:
		return shared.Long
	case float64(t.Short) >= quorum:
		return shared.Short
	default:
		return shared.Neutral
	}
}

// Confidence returns the confidence tier of the tally, graded purely on how
// many indicators produced a result. A unanimous read over a handful of
// indicators is still a low confidence read.
func (t *Tally) Confidence() shared.Confidence {
	considered := t.Considered()
	switch {
	case considered >= highConfidenceCount:
		return shared.HighConfidence
	case considered >= mediumConfidenceCount:
		return shared.MediumConfidence
	default:
		return shared.LowConfidence
	}
}

// tallyVotes tallies the directional votes of the provided results.
func tallyVotes(results []*shared.IndicatorResult) Tally {
	var tally Tally
	for idx := range results {
		switch results[idx].Vote {
		case shared.Long:
			tally.Long++
		case shared.Short:
			tally.Short++
		default:
			tally.Neutral++
		}
	}

	return tally
}

// rankContributors returns copies of the strongest indicator results behind
// the provided consensus direction, ordered by conviction with name as the
// tie break. A neutral consensus ranks across all results since no side won.
func rankContributors(results []*shared.IndicatorResult, direction shared.Direction) []shared.IndicatorResult {
	ranked := make([]*shared.IndicatorResult, 0, len(results))
	for idx := range results {
		if direction == shared.Neutral || results[idx].Vote == direction {
			ranked = append(ranked, results[idx])
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Conviction != ranked[j].Conviction {
			return ranked[i].Conviction > ranked[j].Conviction
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > maxContributors {
		ranked = ranked[:maxContributors]
	}

	contributors := make([]shared.IndicatorResult, len(ranked))
	for idx := range ranked {
		contributors[idx] = *ranked[idx]
	}

	return contributors
}
