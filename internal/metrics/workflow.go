package metrics

import (
	"time"

	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartWorkflowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_workflows_total",
			Help: "Cart synchronization workflows by outcome.",
		},
		[]string{"workflow", "outcome"},
	)

	cartWorkflowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_workflow_duration_seconds",
			Help:    "Duration of cart synchronization workflows in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"workflow"},
	)

	cartWorkflowsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_workflows_in_flight",
			Help: "Cart synchronization workflows currently running.",
		},
	)

	slotConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_slot_conflict_retries_total",
			Help: "Allocations repeated because another line item took a slot first.",
		},
	)
)

// TrackWorkflow records the start of a workflow and returns the function
// that records its completion.
func TrackWorkflow(workflow string) func(err error) {
	start := time.Now()
	cartWorkflowsInFlight.Inc()

	return func(err error) {
		cartWorkflowsInFlight.Dec()
		cartWorkflowDuration.WithLabelValues(workflow).Observe(time.Since(start).Seconds())
		cartWorkflowsTotal.WithLabelValues(workflow, Outcome(err)).Inc()
	}
}

// Outcome labels a workflow result with its error code.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr.Code
	}

	return appErrors.ErrCodeInternal
}

func SlotConflictRetry() {
	slotConflictRetries.Inc()
}
