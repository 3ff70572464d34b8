package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MetricMeetingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_requests_total",
			Help: "Meeting requests by outcome (created, conflict, rejected)",
		},
		[]string{"outcome"},
	)
	MetricMeetingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_transitions_total",
			Help: "Applied meeting status transitions",
		},
		[]string{"action", "to"},
	)
	MetricSlotQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_queries_total",
			Help: "Slot generation requests by outcome",
		},
		[]string{"outcome"},
	)
	MetricSlotGenerationLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slot_generation_duration_seconds",
			Help:    "Time spent generating the slots of a day",
			Buckets: prometheus.DefBuckets,
		},
	)
	MetricNotificationsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Notification events handed to the dispatcher, by kind and result",
		},
		[]string{"kind", "result"},
	)
	MetricJobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_job_runs_total",
			Help: "Background job runs by job name and result",
		},
		[]string{"job", "result"},
	)
)

// RegisterMetrics adds the service collectors to registerer.
func RegisterMetrics(registerer prometheus.Registerer) {
	registerer.MustRegister(
		MetricMeetingRequests,
		MetricMeetingTransitions,
		MetricSlotQueries,
		MetricSlotGenerationLatency,
		MetricNotificationsDispatched,
		MetricJobRuns,
	)
}
