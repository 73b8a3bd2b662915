package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	nicheHire = "nichehire"

	// Matching cycle metrics
	matchingJobsProcessedTotal = "matching_jobs_processed_total"
	notificationsSentTotal     = "notifications_sent_total"
	notificationFailuresTotal  = "notification_failures_total"
	matchingCyclesSkippedTotal = "matching_cycles_skipped_total"

	// Application lifecycle metrics
	applicationTransitionsTotal = "application_status_transitions_total"

	// Labels
	statusLabel = "status"
)

/**
* Metrics definition
**/
var matchingJobsProcessedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: nicheHire,
		Name:      matchingJobsProcessedTotal,
		Help:      "number of jobs processed by the matching cycle",
	},
)

var notificationsSentMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: nicheHire,
		Name:      notificationsSentTotal,
		Help:      "number of notifications sent to matched job seekers",
	},
)

var notificationFailuresMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: nicheHire,
		Name:      notificationFailuresTotal,
		Help:      "number of notifications that failed to send",
	},
)

var matchingCyclesSkippedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: nicheHire,
		Name:      matchingCyclesSkippedTotal,
		Help:      "number of scheduler ticks skipped because a cycle was still running",
	},
)

var applicationTransitionsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: nicheHire,
		Name:      applicationTransitionsTotal,
		Help:      "number of application status transitions, partitioned by target status",
	},
	[]string{statusLabel},
)

func IncreaseMatchingJobsProcessed(n int) {
	matchingJobsProcessedMetric.Add(float64(n))
}

func IncreaseNotificationsSent(n int) {
	notificationsSentMetric.Add(float64(n))
}

func IncreaseNotificationFailures(n int) {
	notificationFailuresMetric.Add(float64(n))
}

func IncreaseMatchingCyclesSkipped() {
	matchingCyclesSkippedMetric.Inc()
}

func IncreaseApplicationTransitions(status string) {
	applicationTransitionsMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func init() {
	prometheus.MustRegister(matchingJobsProcessedMetric)
	prometheus.MustRegister(notificationsSentMetric)
	prometheus.MustRegister(notificationFailuresMetric)
	prometheus.MustRegister(matchingCyclesSkippedMetric)
	prometheus.MustRegister(applicationTransitionsMetric)
}
