package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollsCreatedCounter     prometheus.Counter
	PollsDeletedCounter     prometheus.Counter
	VotesCastCounter        *prometheus.CounterVec
	RequestDurationHist     *prometheus.HistogramVec
	ListingCacheHitsCounter *prometheus.CounterVec
)

// Init registers all Prometheus metrics under the given namespace.
func Init(namespace string) {
	PollsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_created_total",
		Help:      "Total number of polls created",
	})

	PollsDeletedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_deleted_total",
		Help:      "Total number of polls soft-deleted",
	})

	VotesCastCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Total number of votes cast",
		},
		[]string{"kind"}, // authenticated | anonymous
	)

	RequestDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ListingCacheHitsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_cache_requests_total",
			Help:      "Poll listing cache lookups",
		},
		[]string{"result"}, // hit | miss
	)
}

// Handler exposes the default registry for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
