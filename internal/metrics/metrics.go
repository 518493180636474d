package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FeedRequests counts feed page requests
	FeedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberloop_feed_requests_total",
		Help: "Number of feed page requests served.",
	})

	// FeedSourceFailures counts content source failures absorbed by
	// graceful degradation, labeled by source kind
	FeedSourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emberloop_feed_source_failures_total",
		Help: "Number of content source failures during feed assembly.",
	}, []string{"source"})

	// Toggles counts toggle operations by kind and resulting state
	Toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emberloop_toggles_total",
		Help: "Number of toggle operations by kind and resulting state.",
	}, []string{"kind", "state"})

	// NotificationsDropped counts notification writes that failed and were
	// swallowed
	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberloop_notifications_dropped_total",
		Help: "Number of notifications dropped after a failed write.",
	})
)

// Serve exposes /metrics on its own listener, separate from the API port
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
