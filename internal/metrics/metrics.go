// Package metrics provides Prometheus observability metrics for the triage
// engine. A one-shot run populates them once; they can be scraped from a
// debug listener or pushed to a Pushgateway after the run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the application.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// TicketsProcessed is the number of tickets allocated in the last run.
var TicketsProcessed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "tickets_processed",
	Help:      "Number of tickets assigned in the last allocation run",
})

// AgentsInRoster is the roster size of the last run.
var AgentsInRoster = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "agents_in_roster",
	Help:      "Number of agents in the roster snapshot of the last run",
})

// AssignmentsByPriority breaks the last run's assignments down by priority tier.
var AssignmentsByPriority = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "assignments_by_priority",
	Help:      "Assignments in the last run broken down by priority tier",
}, []string{"priority"})

// GeneralistFallbacksTotal counts assignments made without any skill match.
var GeneralistFallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "generalist_fallbacks_total",
	Help:      "Count of assignments committed with a zero skill sub-score",
})

// AssignmentScores tracks the distribution of winning total scores.
var AssignmentScores = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "triage",
	Name:      "assignment_score",
	Help:      "Winning total score per committed assignment",
	Buckets:   []float64{10, 25, 50, 75, 100, 125, 150, 165},
})

// AllocatorDurationSeconds tracks time to run the allocation pass.
var AllocatorDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "triage",
	Name:      "allocator_duration_seconds",
	Help:      "Time taken by the allocation pass",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
})

// ResetRunGauges clears the per-run gauges before a new allocation run.
func ResetRunGauges() {
	TicketsProcessed.Set(0)
	AgentsInRoster.Set(0)
	AssignmentsByPriority.Reset()
}
