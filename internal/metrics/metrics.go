package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickcut_webhook_events_total",
			Help: "Processed board webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)
	webhookDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quickcut_webhook_duration_seconds",
			Help:    "Time spent handling one board webhook delivery",
			Buckets: prometheus.DefBuckets,
		},
	)
	boardMirrorFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quickcut_board_mirror_failures_total",
			Help: "Best-effort board mirror calls that failed",
		},
	)
)

// ObserveWebhook records the outcome and duration of one processed delivery.
func ObserveWebhook(outcome string, duration time.Duration) {
	webhookEvents.WithLabelValues(outcome).Inc()
	webhookDuration.Observe(duration.Seconds())
}

// IncBoardMirrorFailure counts a swallowed board mirror error.
func IncBoardMirrorFailure() {
	boardMirrorFailures.Inc()
}
