package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recommendationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "srtm_recommendation_runs_total",
		Help: "Total STIG family recommendation runs",
	}, []string{"profile"})

	recommendationResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "srtm_recommendation_results",
		Help:    "Number of STIG families returned per recommendation run",
		Buckets: []float64{0, 1, 2, 4, 8, 12, 16, 24},
	})

	recommendationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "srtm_recommendation_duration_seconds",
		Help:    "Recommendation run duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	catalogChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "srtm_catalog_changes_total",
		Help: "STIG catalog snapshot changes by operation",
	}, []string{"operation"})

	workflowTransfers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "srtm_workflow_transfers_total",
		Help: "Workflow exports and imports by direction and outcome",
	}, []string{"direction", "outcome"})

	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "srtm_rate_limited_total",
		Help: "Requests rejected by the rate limiter by group",
	}, []string{"group"})
)

func init() {
	prometheus.MustRegister(
		recommendationRuns,
		recommendationResults,
		recommendationDuration,
		catalogChanges,
		workflowTransfers,
		rateLimited,
	)
}

// ObserveRecommendationRun records one engine run.
func ObserveRecommendationRun(profile string, results int, elapsed time.Duration) {
	recommendationRuns.WithLabelValues(profile).Inc()
	recommendationResults.Observe(float64(results))
	recommendationDuration.Observe(elapsed.Seconds())
}

// IncCatalogChange counts a catalog replace, backup, restore or update.
func IncCatalogChange(operation string) {
	catalogChanges.WithLabelValues(operation).Inc()
}

// IncWorkflowTransfer counts a workflow export or import.
func IncWorkflowTransfer(direction, outcome string) {
	workflowTransfers.WithLabelValues(direction, outcome).Inc()
}

// IncRateLimited counts a request rejected for the given limiter group.
func IncRateLimited(group string) {
	rateLimited.WithLabelValues(group).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
