package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	TonesRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tonescript_tones_registered",
		Help: "Number of parsed tones held in the catalog",
	})
)

// Counters
var (
	ParsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tonescript_parses_total",
		Help: "Total script parses by outcome (ok or the failing rule)",
	}, []string{"outcome"})
	TonesRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonescript_tones_rejected_total",
		Help: "Tones rejected due to catalog capacity",
	})
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tonescript_renders_total",
		Help: "Total audio renders by format",
	}, []string{"format"})
	SamplesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonescript_samples_rendered_total",
		Help: "Total PCM samples produced across all renders",
	})
	TimeOutOfRangeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonescript_time_out_of_range_total",
		Help: "Sample requests outside a tone's cadence timeline",
	})
)

// Histograms
var (
	RenderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tonescript_render_duration_ms",
		Help:    "Audio render duration in milliseconds by format",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"format"})
)
