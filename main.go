package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dnldd/quorum/database"
	"github.com/dnldd/quorum/engine"
	"github.com/dnldd/quorum/fetch"
	"github.com/dnldd/quorum/indicator"
	"github.com/dnldd/quorum/service"
	"github.com/dnldd/quorum/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Msgf("loading config: %v", err)
		return
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	logger := log.With().Str("service", "scanner").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timeframes := make([]shared.Timeframe, 0, len(cfg.Timeframes))
	for idx := range cfg.Timeframes {
		timeframe, err := shared.ParseTimeframe(cfg.Timeframes[idx])
		if err != nil {
			logger.Error().Msgf("parsing timeframe: %v", err)
			return
		}

		timeframes = append(timeframes, timeframe)
	}

	var fetcher shared.CandleFetcher
	switch {
	case cfg.DataFilepath != "":
		fetcher, err = fetch.NewFileSource(&fetch.FileSourceConfig{
			Market:    cfg.Markets[0],
			Timeframe: timeframes[0],
			FilePath:  cfg.DataFilepath,
		})
		if err != nil {
			logger.Error().Msgf("creating file data source: %v", err)
			return
		}
	default:
		fetcher = fetch.NewBinanceClient(&fetch.BinanceConfig{
			APIKey:    cfg.BinanceAPIKey,
			SecretKey: cfg.BinanceSecretKey,
		})
	}

	var store database.SignalStorer
	if cfg.DBEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		db, err := database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DBEndpoint,
			User:     cfg.DBUser,
			Pass:     cfg.DBPass,
			Logger:   &dbLogger,
		})
		if err != nil {
			logger.Error().Msgf("creating database: %v", err)
			return
		}

		store = db
	}

	engineLogger := logger.With().Str("component", "engine").Logger()
	signalEngine, err := engine.NewEngine(&engine.EngineConfig{
		RiskProfiles: engine.DefaultRiskProfiles(),
		Catalog:      indicator.Catalog(),
		Logger:       engineLogger,
	})
	if err != nil {
		logger.Error().Msgf("creating signal engine: %v", err)
		return
	}

	var metrics *service.Metrics
	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = service.NewMetrics(registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			err := http.ListenAndServe(cfg.MetricsAddr, mux)
			if err != nil {
				logger.Error().Msgf("serving metrics: %v", err)
			}
		}()
	}

	scannerLogger := logger.With().Str("component", "scanner").Logger()
	scanner, err := service.NewScanner(&service.ScannerConfig{
		Markets:      cfg.Markets,
		Timeframes:   timeframes,
		Fetcher:      fetcher,
		Engine:       signalEngine,
		Store:        store,
		Metrics:      metrics,
		ScanInterval: time.Duration(cfg.ScanIntervalSeconds) * time.Second,
		Logger:       &scannerLogger,
	})
	if err != nil {
		logger.Error().Msgf("creating scanner service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	err = scanner.Run(ctx)
	if err != nil {
		logger.Error().Msgf("running scanner service: %v", err)
	}
}
