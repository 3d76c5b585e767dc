// Package metrics provides Prometheus metrics for the Dahlia service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreLookupsTotal tracks record store lookups by table and result
	StoreLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dahlia",
			Subsystem: "store",
			Name:      "lookups_total",
			Help:      "Total number of record store lookups by table and result",
		},
		[]string{"table", "result"},
	)

	// StoreLookupDuration tracks record store lookup duration in seconds
	StoreLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dahlia",
			Subsystem: "store",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of record store lookups in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"table"},
	)

	// ConsolidationsTotal tracks consolidation requests by outcome
	ConsolidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dahlia",
			Subsystem: "consolidation",
			Name:      "requests_total",
			Help:      "Total number of consolidation requests by outcome",
		},
		[]string{"outcome"},
	)

	// AuthRejectionsTotal tracks requests rejected by the API token gate
	AuthRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dahlia",
			Subsystem: "auth",
			Name:      "rejections_total",
			Help:      "Total number of requests rejected by the API token gate",
		},
	)
)
