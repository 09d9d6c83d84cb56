package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Asset pipeline Prometheus metrics.
var (
	// AssetCacheTotal counts Redis asset-cache lookups by result ("hit"/"miss").
	AssetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexedge",
			Name:      "asset_cache_total",
			Help:      "Total asset cache lookups",
		},
		[]string{"doc", "result"},
	)

	ObjectStoreOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexedge",
			Name:      "object_store_op_duration_seconds",
			Help:      "Object store operation duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	ObjectStoreOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexedge",
			Name:      "object_store_ops_total",
			Help:      "Total object store operations",
		},
		[]string{"op", "status"},
	)
)

// RegisterAssetMetrics registers asset and object-store collectors.
// Called explicitly from main (no init()) so the sync CLI can use the
// storage client without exporting server metrics.
func RegisterAssetMetrics() {
	prometheus.MustRegister(AssetCacheTotal)
	prometheus.MustRegister(ObjectStoreOpDuration)
	prometheus.MustRegister(ObjectStoreOpsTotal)
}

// ObserveObjectStoreOp records one object-store call.
func ObserveObjectStoreOp(op string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ObjectStoreOpsTotal.WithLabelValues(op, status).Inc()
	ObjectStoreOpDuration.WithLabelValues(op).Observe(d.Seconds())
}
