package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "builds_total",
		Help:      "Count of snapshot builds.",
	}, []string{"pool", "status"})
	snapshotBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "build_duration_seconds",
		Help:      "Duration of snapshot builds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"pool", "status"})
	snapshotAccountsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "accounts_total",
		Help:      "Count of stake entry accounts by decode outcome.",
	}, []string{"pool", "outcome"})
	snapshotPoolFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "pool_fallback_total",
		Help:      "Count of builds that used the zero pool record.",
	}, []string{"pool"})
	snapshotStakers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "stakers",
		Help:      "Open stakers in the most recent snapshot.",
	}, []string{"pool"})
)

// SnapshotBuilds tracks metrics for snapshot builds of one pool.
type SnapshotBuilds struct {
	pool string
}

// NewSnapshotBuilds constructs a metrics collector for snapshot builds.
func NewSnapshotBuilds(pool string) *SnapshotBuilds {
	if pool == "" {
		pool = "unknown"
	}
	return &SnapshotBuilds{pool: pool}
}

// ObserveBuild records a build outcome and duration.
func (m SnapshotBuilds) ObserveBuild(err error, started time.Time) {
	status := statusOf(err)

	snapshotBuildsTotal.WithLabelValues(m.pool, status).Inc()
	snapshotBuildDuration.WithLabelValues(m.pool, status).Observe(time.Since(started).Seconds())
}

// ObserveEntries records the decode outcome counters of one build.
func (m SnapshotBuilds) ObserveEntries(open, closed, skipped int) {
	snapshotAccountsTotal.WithLabelValues(m.pool, "open").Add(float64(open))
	snapshotAccountsTotal.WithLabelValues(m.pool, "closed").Add(float64(closed))
	snapshotAccountsTotal.WithLabelValues(m.pool, "skipped").Add(float64(skipped))
	snapshotStakers.WithLabelValues(m.pool).Set(float64(open))
}

// ObservePoolFallback records a build that degraded to the zero pool record.
func (m SnapshotBuilds) ObservePoolFallback() {
	snapshotPoolFallbackTotal.WithLabelValues(m.pool).Inc()
}
