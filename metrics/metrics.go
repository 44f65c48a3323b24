package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ScansTotal counts classification calls by matched profile outcome.
	ScansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "greenwise",
		Subsystem: "materials",
		Name:      "scans_total",
		Help:      "Total number of material classification calls, labeled by aggregate eco score band.",
	}, []string{"band"})

	// ScanErrorsTotal counts analyze requests rejected or failed, by reason.
	ScanErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "greenwise",
		Subsystem: "materials",
		Name:      "scan_errors_total",
		Help:      "Total number of failed analyze-materials requests, labeled by reason.",
	}, []string{"reason"})

	// ScanDurationSeconds is end-to-end time per analyze request including persistence.
	ScanDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "greenwise",
		Subsystem: "materials",
		Name:      "scan_duration_seconds",
		Help:      "End-to-end time to classify and persist one scan.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	// StatsRequestsTotal counts dashboard stats requests.
	StatsRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "greenwise",
		Subsystem: "materials",
		Name:      "stats_requests_total",
		Help:      "Total number of material stats aggregation requests.",
	})
)

// Register registers material service metrics with the default Prometheus
// registry. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ScansTotal,
			ScanErrorsTotal,
			ScanDurationSeconds,
			StatsRequestsTotal,
		)
	})
}

// ScoreBand buckets an aggregate eco score into a coarse label to keep the
// scans_total cardinality low.
func ScoreBand(ecoScore float64) string {
	switch {
	case ecoScore >= 7:
		return "good"
	case ecoScore >= 4:
		return "moderate"
	default:
		return "poor"
	}
}
