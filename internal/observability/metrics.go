package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ThreadDetailBuild records how long assembling a thread detail takes.
	ThreadDetailBuild = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forum_thread_detail_build_seconds",
		Help:    "Time spent assembling a thread detail from storage",
		Buckets: prometheus.DefBuckets,
	})

	// ThreadDetailCache counts detail cache lookups by result (hit, miss, error).
	ThreadDetailCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_thread_detail_cache_total",
		Help: "Thread detail cache lookups by result",
	}, []string{"result"})

	// LikeToggles counts like toggles by resulting action.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_like_toggles_total",
		Help: "Comment like toggles by resulting action",
	}, []string{"action"})

	// ContentWrites counts created and soft-deleted threads, comments and replies.
	ContentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_content_writes_total",
		Help: "Content writes by entity and operation",
	}, []string{"entity", "operation"})
)

// TrackQuery starts a latency measurement; call the returned func when the query ends.
//
//	defer observability.TrackQuery("select", "comments")()
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
