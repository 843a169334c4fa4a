package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the scanner prometheus collectors.
type Metrics struct {
	// ScansTotal counts completed market scans by outcome.
	ScansTotal *prometheus.CounterVec
	// SignalsTotal counts emitted signals by direction and confidence.
	SignalsTotal *prometheus.CounterVec
	// ScanSeconds observes scan durations.
	ScanSeconds prometheus.Histogram
}

// NewMetrics initializes the scanner metrics and registers them with the
// provided registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		ScansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_scans_total",
			Help: "Completed market scans by outcome.",
		}, []string{"outcome"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_signals_total",
			Help: "Emitted signals by direction and confidence.",
		}, []string{"direction", "confidence"}),
		ScanSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quorum_scan_duration_seconds",
			Help:    "Market scan durations.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(metrics.ScansTotal, metrics.SignalsTotal, metrics.ScanSeconds)

	return metrics
}
