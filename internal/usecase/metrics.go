package usecase

import "github.com/prometheus/client_golang/prometheus"

var (
	recalculationItemsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hiking_league",
		Subsystem: "recalculation",
		Name:      "visits_processed_total",
		Help:      "Number of visits handled by recalculation runs, labeled by outcome.",
	}, []string{"status"})

	recalculationRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hiking_league",
		Subsystem: "recalculation",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a recalculation run.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	recalculationPublishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hiking_league",
		Subsystem: "recalculation",
		Name:      "publish_failures_total",
		Help:      "Number of score-recalculated events that could not be published.",
	})
)

func init() {
	prometheus.MustRegister(recalculationItemsCounter, recalculationRunDuration, recalculationPublishFailures)
}
