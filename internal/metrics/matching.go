package metrics

import "github.com/prometheus/client_golang/prometheus"

// Метрики матчинга и начисления impact.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Name:      "match_requests_total",
			Help:      "Total number of match requests",
		},
		[]string{"mode"}, // "proximity" / "semantic" / "nearby"
	)

	MatchCandidatesReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "synapse",
			Name:      "match_candidates_returned",
			Help:      "Number of candidates returned per match request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	ImpactVerdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Name:      "impact_verdicts_total",
			Help:      "Feedback classifier verdicts",
		},
		[]string{"verdict"}, // "constructive" / "not_constructive"
	)

	ImpactPointsAwardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Name:      "impact_points_awarded_total",
			Help:      "Total impact points awarded",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synapse",
			Name:      "embedding_requests_total",
			Help:      "Embedding provider requests by outcome",
		},
		[]string{"outcome"}, // "ok" / "error"
	)

	EmbeddingRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "synapse",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding provider request duration",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var matchMetricsRegistered bool

// RegisterMatchingMetrics registers Prometheus matching metrics. Must be called once from main.
func RegisterMatchingMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchCandidatesReturned)
	prometheus.MustRegister(ImpactVerdictsTotal)
	prometheus.MustRegister(ImpactPointsAwardedTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	matchMetricsRegistered = true
}
