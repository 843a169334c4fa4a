// Package engine turns candle history into trade signals: it fans the
// indicator catalog out over a series, tallies the directional votes into a
// quorum consensus and attaches timeframe-scaled risk parameters.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dnldd/quorum/indicator"
	"github.com/dnldd/quorum/shared"
	"github.com/rs/zerolog"
)

const (
	// maxWorkers is the maximum number of concurrent workers.
	maxWorkers = 16
)

// EngineConfig represents the signal engine configuration.
type EngineConfig struct {
	// RiskProfiles maps supported timeframes to their risk parameters.
	RiskProfiles map[shared.Timeframe]RiskProfile
	// Catalog is the set of indicators evaluated per series.
	Catalog []indicator.Indicator
	// Logger represents the application logger.
	Logger zerolog.Logger
}

// Validate asserts the config sanity checks its fields.
func (cfg *EngineConfig) Validate() error {
	var errs error

	if len(cfg.RiskProfiles) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no risk profiles provided for signal engine"))
	}
	if len(cfg.Catalog) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no indicator catalog provided for signal engine"))
	}

	seen := make(map[string]struct{}, len(cfg.Catalog))
	for idx := range cfg.Catalog {
		name := cfg.Catalog[idx].Name
		if _, ok := seen[name]; ok {
			errs = errors.Join(errs, fmt.Errorf("duplicate indicator name in catalog: %s", name))
		}
		seen[name] = struct{}{}

		if cfg.Catalog[idx].Compute == nil {
			errs = errors.Join(errs, fmt.Errorf("indicator %s has no compute function", name))
		}
	}

	return errs
}

// Engine evaluates candle series into consensus signals.
type Engine struct {
	cfg     *EngineConfig
	workers chan struct{}
}

// NewEngine initializes a new signal engine.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating engine config: %w", err)
	}

	return &Engine{
		cfg:     cfg,
		workers: make(chan struct{}, maxWorkers),
	}, nil
}

// computeResults runs every permitted catalog indicator over the series
// concurrently and returns the surviving results sorted by name, so the
// outcome does not depend on scheduling.
func (e *Engine) computeResults(ctx context.Context, series *shared.CandleSeries,
	filter *shared.IndicatorFilter) []*shared.IndicatorResult {
	catalog := e.cfg.Catalog
	slots := make([]*shared.IndicatorResult, len(catalog))

	var wg sync.WaitGroup
	for idx := range catalog {
		entry := &catalog[idx]
		if !filter.Allows(entry.Name) || series.Len() < entry.MinHistory {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		e.workers <- struct{}{}
		go func(slot int) {
			defer func() {
				<-e.workers
				wg.Done()
			}()

			slots[slot] = catalog[slot].Compute(series)
		}(idx)
	}

	wg.Wait()

	results := make([]*shared.IndicatorResult, 0, len(slots))
	for idx := range slots {
		if slots[idx] != nil {
			results = append(results, slots[idx])
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return results
}

// Evaluate computes a consensus signal for the provided market series. The
// filter is optional and restricts which catalog indicators are considered.
// An unsupported timeframe fails the evaluation before any computation.
// Evaluation is deterministic: identical inputs yield identical signals, so
// the creation time is left for callers to stamp at emission.
func (e *Engine) Evaluate(ctx context.Context, market string, timeframe shared.Timeframe,
	series *shared.CandleSeries, filter *shared.IndicatorFilter) (*shared.Signal, error) {
	profile, ok := e.cfg.RiskProfiles[timeframe]
	if !ok {
		return nil, fmt.Errorf("no risk profile for timeframe %s: %w",
			timeframe, shared.ErrUnknownTimeframe)
	}

	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("no candle history for %s: %w", market, shared.ErrInvalidSeries)
	}

	results := e.computeResults(ctx, series, filter)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tally := tallyVotes(results)
	direction := tally.Direction()
	confidence := tally.Confidence()
	contributors := rankContributors(results, direction)

	entry := series.Last().Close
	stopLoss, takeProfit, secondTakeProfit := riskLevels(profile, direction, entry)

	e.cfg.Logger.Debug().Msgf("%s %s consensus %s (%d long / %d short / %d neutral of %d)",
		market, timeframe, direction, tally.Long, tally.Short, tally.Neutral, tally.Considered())

	signal := &shared.Signal{
		Symbol:                 market,
		Timeframe:              timeframe,
		Direction:              direction,
		Confidence:             confidence,
		EntryPrice:             entry,
		StopLoss:               stopLoss,
		TakeProfitOne:          takeProfit,
		TakeProfitTwo:          secondTakeProfit,
		Leverage:               float64(profile.Leverage),
		ContributingIndicators: contributors,
	}

	return signal, nil
}
