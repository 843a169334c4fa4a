// Package service wires the signal engine, candle sources and the signal
// store into a periodic market scanner.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/quorum/database"
	"github.com/dnldd/quorum/engine"
	"github.com/dnldd/quorum/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	// maxWorkers is the maximum number of concurrent workers.
	maxWorkers = 8
	// fetchLimit is the number of candles requested per scan, enough
	// history for the slowest catalog indicator.
	fetchLimit = 200
)

// ScannerConfig represents the configuration struct for the scanner service.
type ScannerConfig struct {
	// Markets represents the scanned markets.
	Markets []string
	// Timeframes represents the scanned timeframes per market.
	Timeframes []shared.Timeframe
	// Fetcher represents the candle history source.
	Fetcher shared.CandleFetcher
	// Engine represents the signal engine.
	Engine *engine.Engine
	// Store persists emitted signals, optional.
	Store database.SignalStorer
	// Notifier relays non-neutral signals, optional.
	Notifier shared.SignalNotifier
	// Filter restricts the evaluated indicators, optional.
	Filter *shared.IndicatorFilter
	// ScanInterval is the time between scans.
	ScanInterval time.Duration
	// Metrics holds the scanner metrics, optional.
	Metrics *Metrics
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *ScannerConfig) Validate() error {
	var errs error

	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for scanner service"))
	}
	if len(cfg.Timeframes) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no timeframes provided for scanner service"))
	}
	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("candle fetcher cannot be nil"))
	}
	if cfg.Engine == nil {
		errs = errors.Join(errs, fmt.Errorf("signal engine cannot be nil"))
	}
	if cfg.ScanInterval <= 0 {
		errs = errors.Join(errs, fmt.Errorf("scan interval must be positive"))
	}

	return errs
}

// Scanner periodically evaluates all configured market and timeframe pairs
// and relays the resulting signals.
type Scanner struct {
	cfg          *ScannerConfig
	jobScheduler *gocron.Scheduler
	workers      chan struct{}
	scans        atomic.Uint64
	emitted      atomic.Uint64
}

// NewScanner initializes a new scanner service.
func NewScanner(cfg *ScannerConfig) (*Scanner, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating scanner config: %w", err)
	}

	return &Scanner{
		cfg:          cfg,
		jobScheduler: gocron.NewScheduler(time.UTC),
		workers:      make(chan struct{}, maxWorkers),
	}, nil
}

// Scans returns the number of completed market scans.
func (s *Scanner) Scans() uint64 {
	return s.scans.Load()
}

// Emitted returns the number of non-neutral signals emitted.
func (s *Scanner) Emitted() uint64 {
	return s.emitted.Load()
}

// scanMarket evaluates a single market and timeframe pair, then persists and
// relays the resulting signal.
func (s *Scanner) scanMarket(ctx context.Context, market string, timeframe shared.Timeframe) {
	start := time.Now()
	defer func() {
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.ScanSeconds.Observe(time.Since(start).Seconds())
		}
	}()

	candles, err := s.cfg.Fetcher.FetchCandles(ctx, market, timeframe, fetchLimit)
	if err != nil {
		s.cfg.Logger.Error().Msgf("fetching %s candles (%s): %v", market, timeframe, err)
		s.countScan("fetch_error")
		return
	}

	series, err := shared.NewCandleSeries(candles)
	if err != nil {
		s.cfg.Logger.Error().Msgf("building %s candle series (%s): %v", market, timeframe, err)
		s.countScan("series_error")
		return
	}

	signal, err := s.cfg.Engine.Evaluate(ctx, market, timeframe, series, s.cfg.Filter)
	if err != nil {
		s.cfg.Logger.Error().Msgf("evaluating %s (%s): %v", market, timeframe, err)
		s.countScan("evaluate_error")
		return
	}

	// The engine leaves the creation time for the emitting caller.
	signal.CreatedOn = time.Now().UTC()

	s.scans.Inc()
	if signal.Direction != shared.Neutral {
		s.emitted.Inc()
	}
	s.countScan("ok")
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.SignalsTotal.WithLabelValues(signal.Direction.String(),
			signal.Confidence.String()).Inc()
	}

	if s.cfg.Store != nil {
		err = s.cfg.Store.PersistSignal(ctx, signal)
		if err != nil {
			s.cfg.Logger.Error().Msgf("persisting signal: %v -> %s", err, spew.Sdump(signal))
		}
	}

	if s.cfg.Notifier != nil && signal.Direction != shared.Neutral {
		s.cfg.Notifier.NotifySignal(signal)
	}
}

// countScan counts a completed scan under the provided outcome.
func (s *Scanner) countScan(outcome string) {
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ScansTotal.WithLabelValues(outcome).Inc()
	}
}

// ScanAll evaluates all configured market and timeframe pairs concurrently.
func (s *Scanner) ScanAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, market := range s.cfg.Markets {
		for _, timeframe := range s.cfg.Timeframes {
			if ctx.Err() != nil {
				break
			}

			wg.Add(1)
			s.workers <- struct{}{}
			go func(market string, timeframe shared.Timeframe) {
				defer func() {
					<-s.workers
					wg.Done()
				}()

				s.scanMarket(ctx, market, timeframe)
			}(market, timeframe)
		}
	}

	wg.Wait()
}

// Run manages the lifecycle processes of the scanner service.
func (s *Scanner) Run(ctx context.Context) error {
	_, err := s.jobScheduler.Every(s.cfg.ScanInterval).Do(func() {
		s.ScanAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling market scans: %w", err)
	}

	s.jobScheduler.StartAsync()
	<-ctx.Done()
	s.jobScheduler.Stop()

	return nil
}
