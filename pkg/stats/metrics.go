package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	actionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_actions_applied_total",
			Help: "Number of wallet actions committed by the worker, by type.",
		},
		[]string{"type"},
	)
	actionsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_actions_dropped_total",
			Help: "Number of wallet actions dropped without mutating state.",
		},
	)
	snapshotVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_snapshot_version",
			Help: "Version of the latest published wallet snapshot.",
		},
	)
)

func init() {
	prometheus.MustRegister(actionsApplied, actionsDropped, snapshotVersion)
}

// IncActionApplied counts a committed action of the given type.
func IncActionApplied(actionType string) {
	actionsApplied.WithLabelValues(actionType).Inc()
}

// IncActionDropped counts an action discarded for inconsistency.
func IncActionDropped() {
	actionsDropped.Inc()
}

// SetSnapshotVersion records the latest published snapshot version.
func SetSnapshotVersion(version uint64) {
	snapshotVersion.Set(float64(version))
}
