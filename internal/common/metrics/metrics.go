// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HandlerInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handler_invocations_total",
			Help: "Total number of handler invocations by outcome",
		},
		[]string{"handler", "outcome"},
	)

	HandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handler_failures_total",
			Help: "Total number of handler failures by error code",
		},
		[]string{"handler", "error_code"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "handler_stage_duration_seconds",
			Help: "Duration of handler stages in seconds",
		},
		[]string{"handler", "stage"},
	)

	ArtifactBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handler_artifact_bytes",
			Help:    "Size of uploaded artifacts in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"handler"},
	)
)
