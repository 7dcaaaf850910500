package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// WebhookDeliveries counts webhook deliveries by topic and result
	// (processed, rejected, failed).
	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_deliveries_total", Help: "Webhook deliveries by topic and result."},
		[]string{"topic", "result"},
	)

	// SyncOutcomes counts per-order vendor sync outcomes by classification.
	SyncOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "order_sync_outcomes_total", Help: "Vendor order sync outcomes by status class."},
		[]string{"status"},
	)

	// SyncBatchDuration records operator-triggered batch sync durations.
	SyncBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "order_sync_batch_duration_seconds", Help: "Batch sync duration in seconds.", Buckets: prometheus.DefBuckets},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the package registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(WebhookDeliveries)
		Registry.MustRegister(SyncOutcomes)
		Registry.MustRegister(SyncBatchDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
