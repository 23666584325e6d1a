// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	TripRankings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_rankings_total",
			Help: "Ranking runs by outcome (ranked, empty)",
		},
		[]string{"outcome"},
	)

	TripCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_candidates_total",
			Help: "Candidates seen at each pipeline stage (generated, filtered, returned)",
		},
		[]string{"stage"},
	)

	TripRankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trip_ranking_duration_seconds",
			Help:    "Duration of one ranking run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	FlightSourceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_source_fallbacks_total",
			Help: "Flight lookups answered from the fallback inventory, by reason",
		},
		[]string{"reason"},
	)
)

// ObserveRanking records the outcome and stage counts of one ranking run.
func ObserveRanking(generated, filtered, returned int, seconds float64) {
	outcome := "ranked"
	if returned == 0 {
		outcome = "empty"
	}
	TripRankings.WithLabelValues(outcome).Inc()
	TripCandidates.WithLabelValues("generated").Add(float64(generated))
	TripCandidates.WithLabelValues("filtered").Add(float64(filtered))
	TripCandidates.WithLabelValues("returned").Add(float64(returned))
	TripRankingDuration.Observe(seconds)
}
